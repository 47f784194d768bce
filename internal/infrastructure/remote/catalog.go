package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"lapak-storefront/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.BrandID != "" {
		q.Set("brandId", filter.BrandID)
	}
	if filter.SubcategoryID != "" {
		q.Set("subcategoryId", filter.SubcategoryID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	return call[[]domain.Product](ctx, c, http.MethodGet, withQuery("/products", q), nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := call[domain.Product](ctx, c, http.MethodGet, pathID("/products/%s", id), nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ListVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	return call[[]domain.Variant](ctx, c, http.MethodGet, pathID("/products/%s/variants", productID), nil)
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	p, err := call[domain.Product](ctx, c, http.MethodPost, "/products", in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	p, err := call[domain.Product](ctx, c, http.MethodPut, pathID("/products/%s", id), in)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, http.MethodDelete, pathID("/products/%s", id), nil)
	return err
}

func (c *Client) CreateVariant(ctx context.Context, in domain.VariantInput) (*domain.Variant, error) {
	v, err := call[domain.Variant](ctx, c, http.MethodPost, "/variants", in)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) UpdateVariant(ctx context.Context, id string, in domain.VariantInput) (*domain.Variant, error) {
	v, err := call[domain.Variant](ctx, c, http.MethodPut, pathID("/variants/%s", id), in)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVariant(ctx context.Context, id string) error {
	_, err := call[empty](ctx, c, http.MethodDelete, pathID("/variants/%s", id), nil)
	return err
}

// --- Brands, categories, subcategories ---

func (c *Client) ListTaxa(ctx context.Context, kind domain.TaxonomyKind) ([]domain.Taxon, error) {
	return call[[]domain.Taxon](ctx, c, http.MethodGet, "/"+string(kind), nil)
}

func (c *Client) CreateTaxon(ctx context.Context, kind domain.TaxonomyKind, in domain.TaxonInput) (*domain.Taxon, error) {
	t, err := call[domain.Taxon](ctx, c, http.MethodPost, "/"+string(kind), in)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTaxon(ctx context.Context, kind domain.TaxonomyKind, id string, in domain.TaxonInput) (*domain.Taxon, error) {
	t, err := call[domain.Taxon](ctx, c, http.MethodPut, "/"+string(kind)+pathID("/%s", id), in)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTaxon(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	_, err := call[empty](ctx, c, http.MethodDelete, "/"+string(kind)+pathID("/%s", id), nil)
	return err
}
