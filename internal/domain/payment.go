package domain

import "time"

type Payment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Amount    Money     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GatewaySession is what the third-party payment widget needs to open.
type GatewaySession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

type CreatePaymentInput struct {
	OrderID string `json:"orderId"`
	Method  string `json:"method"`
	Amount  Money  `json:"amount"`
}

// OrderStatusForPayment returns the order status a payment status implies for
// a still-pending order, or "" when nothing should change.
func OrderStatusForPayment(orderStatus, paymentStatus string) string {
	if orderStatus != OrderStatusPending {
		return ""
	}
	switch paymentStatus {
	case PaymentStatusPaid:
		return OrderStatusPaid
	case PaymentStatusFailed, PaymentStatusExpired:
		return OrderStatusCancelled
	}
	return ""
}
