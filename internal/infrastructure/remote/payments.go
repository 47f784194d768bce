package remote

import (
	"context"
	"errors"
	"net/http"

	"lapak-storefront/internal/domain"
)

func (c *Client) CreatePayment(ctx context.Context, in domain.CreatePaymentInput) (*domain.Payment, error) {
	p, err := call[domain.Payment](ctx, c, http.MethodPost, "/payments", in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InitiateGateway opens an online payment session for the widget.
func (c *Client) InitiateGateway(ctx context.Context, paymentID string) (*domain.GatewaySession, error) {
	s, err := call[domain.GatewaySession](ctx, c, http.MethodPost, pathID("/payments/%s/gateway", paymentID), nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetPaymentByOrder returns nil, nil when the order has no payment record.
func (c *Client) GetPaymentByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	p, err := call[*domain.Payment](ctx, c, http.MethodGet, pathID("/payments/order/%s", orderID), nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, paymentID, status string) (*domain.Payment, error) {
	p, err := call[domain.Payment](ctx, c, http.MethodPut, pathID("/payments/%s/status", paymentID), map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
