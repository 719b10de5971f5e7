package order

import (
	"time"

	"github.com/stitchfield/storefront/internal/customer"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the four known statuses. Transitions
// between valid statuses are deliberately unrestricted: an admin may move an
// order from any status to any other, including out of completed and
// cancelled.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Item struct {
	ID                 int64  `json:"id" db:"id"`
	OrderID            int64  `json:"order_id" db:"order_id"`
	ProductID          int64  `json:"product_id" db:"product_id"`
	Quantity           int    `json:"quantity" db:"quantity"`
	Price              int64  `json:"price" db:"price"` // unit price captured at order time
	CustomRequirements string `json:"custom_requirements,omitempty" db:"custom_requirements"`
}

type Order struct {
	ID          int64     `json:"id" db:"id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id"`
	TotalAmount int64     `json:"total_amount" db:"total_amount"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Summary is the admin list view: the order header plus the customer name.
type Summary struct {
	Order
	CustomerName string `json:"customer_name"`
}

// ItemDetail joins an order item with the product it was bought as.
type ItemDetail struct {
	Item
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	ProductImageURL string `json:"product_image_url,omitempty"`
}

// Details is the full admin order view.
type Details struct {
	Order
	Customer customer.Customer `json:"customer"`
	Items    []ItemDetail      `json:"items"`
}
