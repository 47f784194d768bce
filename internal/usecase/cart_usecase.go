package usecase

import (
	"context"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/format"
	"lapak-storefront/pkg/logger"
)

// CartUsecase validates shopper actions against the catalog before they reach
// the cart reducer.
type CartUsecase struct {
	carts       *cart.Service
	catalog     *CatalogUsecase
	maxQuantity int
}

func NewCartUsecase(carts *cart.Service, catalog *CatalogUsecase, maxQuantity int) *CartUsecase {
	return &CartUsecase{carts: carts, catalog: catalog, maxQuantity: maxQuantity}
}

// CartLineView is one cart line as the page renders it.
type CartLineView struct {
	ProductID          string       `json:"productId"`
	VariantID          *string      `json:"variantId,omitempty"`
	Name               string       `json:"name"`
	VariantLabel       string       `json:"variantLabel,omitempty"`
	Image              string       `json:"image,omitempty"`
	UnitPrice          domain.Money `json:"unitPrice"`
	Quantity           int          `json:"quantity"`
	Subtotal           domain.Money `json:"subtotal"`
	UnitPriceFormatted string       `json:"unitPriceFormatted"`
	SubtotalFormatted  string       `json:"subtotalFormatted"`
}

type CartView struct {
	Items          []CartLineView `json:"items"`
	Total          domain.Money   `json:"total"`
	TotalFormatted string         `json:"totalFormatted"`
	Count          int            `json:"count"`
}

func NewCartView(s cart.State) CartView {
	v := CartView{
		Items:          make([]CartLineView, 0, len(s.Items)),
		Total:          s.Total,
		TotalFormatted: format.Rupiah(int64(s.Total)),
		Count:          s.Count(),
	}
	for _, item := range s.Items {
		line := CartLineView{
			ProductID:          item.Product.ID,
			Name:               item.Product.Name,
			Image:              item.Product.FirstImage(),
			UnitPrice:          item.UnitPrice(),
			Quantity:           item.Quantity,
			Subtotal:           item.Subtotal(),
			UnitPriceFormatted: format.Rupiah(int64(item.UnitPrice())),
			SubtotalFormatted:  format.Rupiah(int64(item.Subtotal())),
		}
		if item.Variant != nil {
			id := item.Variant.ID
			line.VariantID = &id
			line.VariantLabel = item.Variant.Label()
		}
		v.Items = append(v.Items, line)
	}
	return v
}

func (u *CartUsecase) View(ctx context.Context, shopperKey string) (CartView, error) {
	if shopperKey == "" {
		return CartView{}, domain.ErrUnauthorized
	}
	return NewCartView(u.carts.View(ctx, shopperKey)), nil
}

// State is the raw cart, for checkout.
func (u *CartUsecase) State(ctx context.Context, shopperKey string) cart.State {
	return u.carts.View(ctx, shopperKey)
}

// AddItem puts quantity units of a product (and variant) into the cart.
func (u *CartUsecase) AddItem(ctx context.Context, shopperKey, productID string, variantID *string, quantity int) (CartView, error) {
	if shopperKey == "" {
		return CartView{}, domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return CartView{}, domain.ErrInvalidInput
	}
	product, variant, err := u.resolve(ctx, productID, variantID)
	if err != nil {
		return CartView{}, err
	}

	state, err := u.carts.Update(ctx, shopperKey, func(s *cart.Store) error {
		key := domain.LineKey{ProductID: product.ID}
		if variant != nil {
			key.VariantID = variant.ID
		}
		if err := u.checkQuantity(variant, s.State().Quantity(key)+quantity); err != nil {
			return err
		}
		s.AddItem(ctx, product.Snapshot(), quantity, variant)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	logger.WithContext(ctx).Debug().
		Str("product_id", product.ID).
		Int("quantity", quantity).
		Msg("Cart: item added")
	return NewCartView(state), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, shopperKey, productID string, variantID *string, quantity int) (CartView, error) {
	if shopperKey == "" {
		return CartView{}, domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return NewCartView(u.carts.Dispatch(ctx, shopperKey, cart.UpdateQuantity{
			Key:      domain.NewLineKey(productID, variantID),
			Quantity: 0,
		})), nil
	}

	// A variant the product no longer carries cannot be stock-checked.
	var variant *domain.Variant
	if variantID != nil && *variantID != "" {
		product, err := u.catalog.GetProduct(ctx, productID)
		if err != nil {
			return CartView{}, err
		}
		if variant, err = pickVariant(product, variantID); err != nil {
			return CartView{}, err
		}
	}

	state, err := u.carts.Update(ctx, shopperKey, func(s *cart.Store) error {
		key := domain.NewLineKey(productID, variantID)
		if _, ok := s.State().Find(key); !ok {
			return domain.ErrNotFound
		}
		if err := u.checkQuantity(variant, quantity); err != nil {
			return err
		}
		s.UpdateQuantity(ctx, productID, quantity, variantID)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return NewCartView(state), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, shopperKey, productID string, variantID *string) (CartView, error) {
	if shopperKey == "" {
		return CartView{}, domain.ErrUnauthorized
	}
	return NewCartView(u.carts.Dispatch(ctx, shopperKey, cart.RemoveItem{Key: domain.NewLineKey(productID, variantID)})), nil
}

func (u *CartUsecase) Clear(ctx context.Context, shopperKey string) (CartView, error) {
	if shopperKey == "" {
		return CartView{}, domain.ErrUnauthorized
	}
	return NewCartView(u.carts.Dispatch(ctx, shopperKey, cart.ClearCart{})), nil
}

// resolve loads the product and picks the variant. A product with a single
// variant gets it selected automatically; with several, the shopper must
// choose.
func (u *CartUsecase) resolve(ctx context.Context, productID string, variantID *string) (*domain.Product, *domain.Variant, error) {
	product, err := u.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if !product.IsPurchasable() {
		return nil, nil, domain.ErrProductUnavailable
	}
	variant, err := pickVariant(product, variantID)
	if err != nil {
		return nil, nil, err
	}
	return product, variant, nil
}

func pickVariant(product *domain.Product, variantID *string) (*domain.Variant, error) {
	if variantID != nil && *variantID != "" {
		v := product.FindVariant(*variantID)
		if v == nil {
			return nil, domain.ErrNotFound
		}
		vc := *v
		return &vc, nil
	}
	switch len(product.Variants) {
	case 0:
		return nil, nil
	case 1:
		vc := product.Variants[0]
		return &vc, nil
	}
	return nil, domain.ErrVariantRequired
}

func (u *CartUsecase) checkQuantity(variant *domain.Variant, quantity int) error {
	if u.maxQuantity > 0 && quantity > u.maxQuantity {
		return domain.ErrQuantityLimit
	}
	if variant != nil && quantity > variant.Stock {
		return domain.ErrInsufficientStock
	}
	return nil
}
