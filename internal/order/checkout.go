package order

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/stitchfield/storefront/internal/customer"
)

// CheckoutCustomer carries the contact form submitted at checkout.
type CheckoutCustomer struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	Address string `json:"address" validate:"required,min=5,max=500"`
}

// CheckoutItem is one cart line item as submitted by the client.
type CheckoutItem struct {
	ProductID          int64  `json:"product_id" validate:"required,gt=0"`
	Quantity           int    `json:"quantity" validate:"required,min=1,max=100"`
	Price              int64  `json:"price" validate:"required,gt=0"`
	CustomRequirements string `json:"custom_requirements,omitempty" validate:"max=500"`
}

// CheckoutRequest is the order-creation request body. TotalAmount is
// accepted for wire compatibility but never trusted: the assembler always
// recomputes the canonical total from the items.
type CheckoutRequest struct {
	Customer    CheckoutCustomer `json:"customer"`
	Items       []CheckoutItem   `json:"items"`
	TotalAmount int64            `json:"total_amount,omitempty"`
}

// ValidationError is the tagged failure result of assembly. It never crosses
// the API boundary as a panic or a 500.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Draft is a validated order-creation request, ready for persistence.
type Draft struct {
	Customer    customer.Customer
	Items       []Item
	TotalAmount int64
}

// Assembler turns a checkout request into a Draft, or reports the first
// validation failure.
type Assembler struct {
	validate *validator.Validate
}

func NewAssembler() *Assembler {
	return &Assembler{validate: validator.New()}
}

// Assemble validates in a fixed sequence: contact fields first, then the
// cart being non-empty, then each line item. The returned draft carries the
// server-derived total.
func (a *Assembler) Assemble(req *CheckoutRequest) (*Draft, *ValidationError) {
	if err := a.validate.Struct(req.Customer); err != nil {
		return nil, firstViolation(err, customerMessages)
	}

	if len(req.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "empty cart"}
	}

	draft := &Draft{
		Customer: customer.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		Items: make([]Item, 0, len(req.Items)),
	}

	for i, item := range req.Items {
		if err := a.validate.Struct(item); err != nil {
			v := firstViolation(err, itemMessages)
			v.Message = fmt.Sprintf("item %d: %s", i+1, v.Message)
			return nil, v
		}

		draft.Items = append(draft.Items, Item{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			Price:              item.Price,
			CustomRequirements: item.CustomRequirements,
		})
		draft.TotalAmount += item.Price * int64(item.Quantity)
	}

	return draft, nil
}

var customerMessages = map[string]string{
	"Name.required":    "name is required",
	"Name.min":         "name must be at least 2 characters",
	"Name.max":         "name must be less than 100 characters",
	"Email.required":   "email is required",
	"Email.email":      "invalid email address",
	"Email.max":        "email must be less than 255 characters",
	"Phone.required":   "phone is required",
	"Phone.min":        "phone number must be at least 10 characters",
	"Phone.max":        "phone number must be less than 20 characters",
	"Address.required": "address is required",
	"Address.min":      "address must be at least 5 characters",
	"Address.max":      "address must be less than 500 characters",
}

var itemMessages = map[string]string{
	"ProductID.required":      "product id is required",
	"ProductID.gt":            "product id must be positive",
	"Quantity.required":       "quantity is required",
	"Quantity.min":            "quantity must be at least 1",
	"Quantity.max":            "quantity cannot exceed 100",
	"Price.required":          "price is required",
	"Price.gt":                "price must be positive",
	"CustomRequirements.max": "custom requirements must be less than 500 characters",
}

func firstViolation(err error, messages map[string]string) *ValidationError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return &ValidationError{Message: "invalid request"}
	}

	fe := validationErrors[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return &ValidationError{Field: fe.Field(), Message: msg}
	}
	return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("invalid %s", fe.Field())}
}
