package product

import "time"

// Product is a catalog entry. Price is in minor currency units.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DeleteResult reports how a delete was resolved. A product referenced by
// order items is soft-deleted (marked out of stock) to keep historical
// orders intact; only unreferenced products are removed outright.
type DeleteResult struct {
	Deleted     bool `json:"deleted"`
	SoftDeleted bool `json:"soft_deleted"`
}
