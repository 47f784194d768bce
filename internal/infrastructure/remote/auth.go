package remote

import (
	"context"
	"net/http"

	"lapak-storefront/internal/domain"
)

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	res, err := call[domain.AuthResult](ctx, c, http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	res, err := call[domain.AuthResult](ctx, c, http.MethodPost, "/auth/register", in)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Profile returns the user behind the bearer token in ctx.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	res, err := call[struct {
		User domain.User `json:"user"`
	}](ctx, c, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return &res.User, nil
}
