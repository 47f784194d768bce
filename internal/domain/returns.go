package domain

import "time"

// ReturnRequest is a pengembalian: a shopper asking to send back a product
// from a delivered order, with photo evidence.
type ReturnRequest struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	Status    string    `json:"status"`
	AdminNote string    `json:"adminNote,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReturnInput struct {
	OrderID          string
	ProductID        string
	Quantity         int
	Reason           string
	Photo            []byte
	PhotoName        string
	PhotoContentType string
}

func (in CreateReturnInput) Validate() error {
	if in.OrderID == "" || in.ProductID == "" || in.Reason == "" || in.Quantity <= 0 {
		return ErrInvalidInput
	}
	if len(in.Photo) == 0 {
		return ErrInvalidInput
	}
	return nil
}

// DamagedProduct aggregates approved returns per product.
type DamagedProduct struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	TotalQuantity int    `json:"totalQuantity"`
	ReturnCount   int    `json:"returnCount"`
}
