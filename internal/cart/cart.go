// Package cart holds the shopper's pending selection before checkout.
// The cart lives on the client side: every mutation is written through to a
// durable local store so the selection survives restarts.
package cart

// Product is the snapshot of a catalog product taken at add-time. Later
// catalog changes do not affect items already in the cart.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

// LineItem is one product selection. A cart holds at most one line item per
// product ID.
type LineItem struct {
	Product            Product `json:"product"`
	Quantity           int     `json:"quantity"`
	CustomRequirements string  `json:"custom_requirements,omitempty"`
}

// Store persists the cart's line items. Both operations are fail-open:
// implementations log and swallow errors, and Load returns nil when the
// stored data is missing or corrupt.
type Store interface {
	Load() []LineItem
	Save(items []LineItem)
}

type Cart struct {
	store Store
	items []LineItem
}

// New rehydrates a cart from the store. A store that fails to load leaves
// the cart empty.
func New(store Store) *Cart {
	return &Cart{
		store: store,
		items: store.Load(),
	}
}

// AddItem appends a line item for the product, or merges into the existing
// one: the quantity is incremented and the custom requirements are replaced
// only when a non-empty value is supplied. Quantities below 1 count as 1.
func (c *Cart) AddItem(p Product, quantity int, customRequirements string) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += quantity
			if customRequirements != "" {
				c.items[i].CustomRequirements = customRequirements
			}
			c.store.Save(c.items)
			return
		}
	}

	c.items = append(c.items, LineItem{
		Product:            p,
		Quantity:           quantity,
		CustomRequirements: customRequirements,
	})
	c.store.Save(c.items)
}

// UpdateItem overwrites the quantity of the line item for productID, and the
// custom requirements when a non-nil value is given. A quantity below 1
// removes the item. Unknown product IDs are a silent no-op.
func (c *Cart) UpdateItem(productID int64, quantity int, customRequirements *string) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			if customRequirements != nil {
				c.items[i].CustomRequirements = *customRequirements
			}
			c.store.Save(c.items)
			return
		}
	}
}

// RemoveItem deletes the line item for productID if present.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.store.Save(c.items)
			return
		}
	}
}

// Clear empties the cart. Used after a successful checkout.
func (c *Cart) Clear() {
	c.items = nil
	c.store.Save(c.items)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of all quantities, recomputed on every call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is Σ(unit price × quantity), recomputed on every call.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}
