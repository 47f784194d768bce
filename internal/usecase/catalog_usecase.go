package usecase

import (
	"context"
	"fmt"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/cache"
	"lapak-storefront/pkg/logger"
)

// CatalogUsecase reads the catalog through a process cache and forwards admin
// mutations, invalidating what they touch.
type CatalogUsecase struct {
	remote      domain.CatalogGateway
	cache       cache.CacheService
	productTTL  time.Duration
	taxonomyTTL time.Duration
}

func NewCatalogUsecase(remote domain.CatalogGateway, cache cache.CacheService, productTTL, taxonomyTTL time.Duration) *CatalogUsecase {
	return &CatalogUsecase{
		remote:      remote,
		cache:       cache,
		productTTL:  productTTL,
		taxonomyTTL: taxonomyTTL,
	}
}

func productKey(id string) string {
	return "product:" + id
}

func taxaKey(kind domain.TaxonomyKind) string {
	return "taxa:" + string(kind)
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return u.remote.ListProducts(ctx, filter)
}

// GetProduct returns the product with its variants. When the product payload
// omits variants they are fetched separately.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := cache.Fetch(u.cache, productKey(id), u.productTTL, func() (domain.Product, error) {
		p, err := u.remote.GetProduct(ctx, id)
		if err != nil {
			return domain.Product{}, err
		}
		if p.Variants == nil {
			variants, err := u.remote.ListVariants(ctx, id)
			if err != nil {
				return domain.Product{}, fmt.Errorf("load variants of %s: %w", id, err)
			}
			p.Variants = variants
		}
		return *p, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (u *CatalogUsecase) ListTaxa(ctx context.Context, kind domain.TaxonomyKind) ([]domain.Taxon, error) {
	if !kind.Valid() {
		return nil, domain.ErrNotFound
	}
	return cache.Fetch(u.cache, taxaKey(kind), u.taxonomyTTL, func() ([]domain.Taxon, error) {
		return u.remote.ListTaxa(ctx, kind)
	})
}

// --- Admin ---

func (u *CatalogUsecase) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	return u.remote.CreateProduct(ctx, in)
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	p, err := u.remote.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, err
	}
	u.invalidateProduct(ctx, id)
	return p, nil
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.remote.DeleteProduct(ctx, id); err != nil {
		return err
	}
	u.invalidateProduct(ctx, id)
	return nil
}

func (u *CatalogUsecase) CreateVariant(ctx context.Context, in domain.VariantInput) (*domain.Variant, error) {
	if err := validateVariantInput(in); err != nil {
		return nil, err
	}
	v, err := u.remote.CreateVariant(ctx, in)
	if err != nil {
		return nil, err
	}
	u.invalidateProduct(ctx, in.ProductID)
	return v, nil
}

func (u *CatalogUsecase) UpdateVariant(ctx context.Context, id string, in domain.VariantInput) (*domain.Variant, error) {
	if err := validateVariantInput(in); err != nil {
		return nil, err
	}
	v, err := u.remote.UpdateVariant(ctx, id, in)
	if err != nil {
		return nil, err
	}
	u.invalidateProduct(ctx, in.ProductID)
	if v.ProductID != "" && v.ProductID != in.ProductID {
		u.invalidateProduct(ctx, v.ProductID)
	}
	return v, nil
}

// DeleteVariant removes a variant. The owning product is not known from the
// id alone, so every cached product is dropped.
func (u *CatalogUsecase) DeleteVariant(ctx context.Context, id string) error {
	if err := u.remote.DeleteVariant(ctx, id); err != nil {
		return err
	}
	u.cache.DeletePrefix("product:")
	return nil
}

func (u *CatalogUsecase) CreateTaxon(ctx context.Context, kind domain.TaxonomyKind, in domain.TaxonInput) (*domain.Taxon, error) {
	if err := validateTaxonInput(kind, in); err != nil {
		return nil, err
	}
	t, err := u.remote.CreateTaxon(ctx, kind, in)
	if err != nil {
		return nil, err
	}
	u.cache.Delete(taxaKey(kind))
	return t, nil
}

func (u *CatalogUsecase) UpdateTaxon(ctx context.Context, kind domain.TaxonomyKind, id string, in domain.TaxonInput) (*domain.Taxon, error) {
	if err := validateTaxonInput(kind, in); err != nil {
		return nil, err
	}
	t, err := u.remote.UpdateTaxon(ctx, kind, id, in)
	if err != nil {
		return nil, err
	}
	u.cache.Delete(taxaKey(kind))
	return t, nil
}

func (u *CatalogUsecase) DeleteTaxon(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	if !kind.Valid() {
		return domain.ErrNotFound
	}
	if err := u.remote.DeleteTaxon(ctx, kind, id); err != nil {
		return err
	}
	u.cache.Delete(taxaKey(kind))
	return nil
}

func (u *CatalogUsecase) invalidateProduct(ctx context.Context, id string) {
	if id == "" {
		return
	}
	u.cache.Delete(productKey(id))
	logger.WithContext(ctx).Debug().Str("product_id", id).Msg("Catalog cache invalidated")
}

func validateProductInput(in domain.ProductInput) error {
	if in.Name == "" || in.Price < 0 {
		return domain.ErrInvalidInput
	}
	switch in.Status {
	case "", domain.ProductStatusActive, domain.ProductStatusInactive, domain.ProductStatusOutOfStock:
		return nil
	}
	return domain.ErrInvalidInput
}

func validateVariantInput(in domain.VariantInput) error {
	if in.ProductID == "" || in.Stock < 0 {
		return domain.ErrInvalidInput
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateTaxonInput(kind domain.TaxonomyKind, in domain.TaxonInput) error {
	if !kind.Valid() {
		return domain.ErrNotFound
	}
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if kind == domain.TaxonomySubcategories && (in.ParentID == nil || *in.ParentID == "") {
		return domain.ErrInvalidInput
	}
	return nil
}
