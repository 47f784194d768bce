package remote

import (
	"context"
	"net/http"

	"lapak-storefront/internal/domain"
)

func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return call[[]domain.Staff](ctx, c, http.MethodGet, "/staff", nil)
}

func (c *Client) CreateStaff(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	s, err := call[domain.Staff](ctx, c, http.MethodPost, "/staff", in)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateStaff(ctx context.Context, id string, in domain.StaffInput) (*domain.Staff, error) {
	s, err := call[domain.Staff](ctx, c, http.MethodPut, pathID("/staff/%s", id), in)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, http.MethodDelete, pathID("/staff/%s", id), nil)
	return err
}
