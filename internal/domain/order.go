package domain

import "time"

type OrderFilter struct {
	Status string
	Page   int
	Limit  int
}

type Address struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Street        string `json:"street"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postalCode"`
	Notes         string `json:"notes,omitempty"`
}

// Validate checks the fields the courier needs.
func (a Address) Validate() error {
	if a.RecipientName == "" || a.Phone == "" || a.Street == "" || a.City == "" {
		return ErrInvalidInput
	}
	return nil
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           Money       `json:"total"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Note            string      `json:"note,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     Money   `json:"price"` // Price at time of purchase
	Quantity  int     `json:"quantity"`
}

// CreateOrderInput is the payload sent to the remote order service.
type CreateOrderInput struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress Address          `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	Note            string           `json:"note,omitempty"`

	// IdempotencyKey is sent as a header, not in the body.
	IdempotencyKey string `json:"-"`
}

type OrderItemInput struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     Money   `json:"price"`
}
