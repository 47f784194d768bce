package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"lapak-storefront/internal/domain"
)

// CreateOrder forwards the caller's idempotency key, when there is one, so
// the Remote Service can answer a resubmitted checkout with the order it
// already created.
func (c *Client) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	req, err := jsonRequest(ctx, c, http.MethodPost, "/orders", in)
	if err != nil {
		return nil, err
	}
	if in.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", in.IdempotencyKey)
	}
	o, err := do[domain.Order](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := call[domain.Order](ctx, c, http.MethodGet, pathID("/orders/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, c, http.MethodGet, "/orders/history", nil)
}

func (c *Client) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	return call[[]domain.Order](ctx, c, http.MethodGet, withQuery("/orders", q), nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	o, err := call[domain.Order](ctx, c, http.MethodPut, pathID("/orders/%s/status", id), map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := call[domain.Order](ctx, c, http.MethodPut, pathID("/orders/%s/cancel", id), nil)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
