package usecase

import (
	"context"
	"fmt"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/checkout"
	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/format"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

// PurchaseTracker reports completed purchases to an analytics sink. It must
// not block the checkout.
type PurchaseTracker interface {
	TrackPurchase(ctx context.Context, order *domain.Order, buyer domain.Address)
}

type CheckoutUsecase struct {
	bridge   *checkout.Bridge
	carts    *cart.Service
	cartUC   *CartUsecase
	catalog  *CatalogUsecase
	orders   domain.OrderGateway
	payments domain.PaymentGateway
	tracker  PurchaseTracker

	// placing serializes PlaceOrder per shopper so two submissions cannot
	// both order the same source.
	placing utils.KeyedMutex
}

func NewCheckoutUsecase(
	bridge *checkout.Bridge,
	carts *cart.Service,
	cartUC *CartUsecase,
	catalog *CatalogUsecase,
	orders domain.OrderGateway,
	payments domain.PaymentGateway,
	tracker PurchaseTracker,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		bridge:   bridge,
		carts:    carts,
		cartUC:   cartUC,
		catalog:  catalog,
		orders:   orders,
		payments: payments,
		tracker:  tracker,
	}
}

// BuyNow is a single product bought without touching the cart.
type BuyNow struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

type SelectedLine struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId,omitempty"`
}

// DraftRequest holds exactly one of BuyNow or Selected.
type DraftRequest struct {
	BuyNow   *BuyNow        `json:"buyNow,omitempty"`
	Selected []SelectedLine `json:"selected,omitempty"`
}

// CreateDraft writes the single-use checkout payload for "buy now" or
// "checkout selected items".
func (u *CheckoutUsecase) CreateDraft(ctx context.Context, shopperKey string, req DraftRequest) (*domain.CheckoutDraft, error) {
	if shopperKey == "" {
		return nil, domain.ErrUnauthorized
	}

	var items []domain.DraftItem
	switch {
	case req.BuyNow != nil && len(req.Selected) > 0:
		return nil, domain.ErrInvalidInput
	case req.BuyNow != nil:
		item, err := u.buyNowItem(ctx, *req.BuyNow)
		if err != nil {
			return nil, err
		}
		items = []domain.DraftItem{item}
	case len(req.Selected) > 0:
		keys := make([]domain.LineKey, 0, len(req.Selected))
		for _, sel := range req.Selected {
			keys = append(keys, domain.NewLineKey(sel.ProductID, sel.VariantID))
		}
		for _, line := range u.carts.View(ctx, shopperKey).Select(keys) {
			items = append(items, line.DraftItem())
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrDraftEmpty
	}

	return u.bridge.Create(ctx, shopperKey, items, domain.DraftTotal(items))
}

func (u *CheckoutUsecase) buyNowItem(ctx context.Context, b BuyNow) (domain.DraftItem, error) {
	if b.ProductID == "" || b.Quantity <= 0 {
		return domain.DraftItem{}, domain.ErrInvalidInput
	}
	product, variant, err := u.cartUC.resolve(ctx, b.ProductID, b.VariantID)
	if err != nil {
		return domain.DraftItem{}, err
	}
	if err := u.cartUC.checkQuantity(variant, b.Quantity); err != nil {
		return domain.DraftItem{}, err
	}
	line := domain.CartLineItem{Product: product.Snapshot(), Variant: variant, Quantity: b.Quantity}
	return line.DraftItem(), nil
}

// CheckoutPreview is the resolved checkout source with display totals.
type CheckoutPreview struct {
	checkout.Source
	TotalFormatted string `json:"totalFormatted"`
}

// Preview shows what PlaceOrder would submit right now.
func (u *CheckoutUsecase) Preview(ctx context.Context, shopperKey string) (CheckoutPreview, error) {
	if shopperKey == "" {
		return CheckoutPreview{}, domain.ErrUnauthorized
	}
	src, err := u.bridge.Resolve(ctx, shopperKey, u.carts.View(ctx, shopperKey))
	if err != nil {
		return CheckoutPreview{}, err
	}
	return CheckoutPreview{Source: src, TotalFormatted: format.Rupiah(int64(src.Total))}, nil
}

// CancelDraft abandons a pending buy-now/selection; checkout falls back to
// the cart.
func (u *CheckoutUsecase) CancelDraft(ctx context.Context, shopperKey string) {
	if shopperKey != "" {
		u.bridge.Clear(ctx, shopperKey)
	}
}

type PlaceOrderInput struct {
	ShippingAddress domain.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Note            string         `json:"note,omitempty"`

	// IdempotencyKey is chosen by the client and reused when it resubmits
	// the same checkout.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// PlaceOrderResult is the created order and, when it could be set up, its
// payment. Gateway is only set for online payments.
type PlaceOrderResult struct {
	Order   *domain.Order          `json:"order"`
	Payment *domain.Payment        `json:"payment,omitempty"`
	Gateway *domain.GatewaySession `json:"gateway,omitempty"`
	Source  string                 `json:"source"`
}

// PlaceOrder submits the checkout source (draft, else cart) as an order and
// sets up its payment. Every validation runs before the Remote Service is
// asked to create anything. Once the order exists the source is cleared
// exactly once; for a cart only the ordered quantities are taken out, so
// lines added meanwhile stay. A payment step that fails afterwards is logged
// and can be retried from the order page.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	sess := domain.SessionFromContext(ctx)
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	if err := in.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	if !domain.IsPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	shopperKey := sess.ShopperKey()
	unlock := u.placing.Lock(shopperKey)
	defer unlock()

	src, err := u.bridge.Resolve(ctx, shopperKey, u.carts.View(ctx, shopperKey))
	if err != nil {
		return nil, err
	}
	if len(src.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}
	if err := u.validateItems(ctx, src.Items); err != nil {
		return nil, err
	}

	orderIn := domain.CreateOrderInput{
		Items:           make([]domain.OrderItemInput, 0, len(src.Items)),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Note:            in.Note,
		IdempotencyKey:  in.IdempotencyKey,
	}
	for _, item := range src.Items {
		orderIn.Items = append(orderIn.Items, domain.OrderItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := u.orders.CreateOrder(ctx, orderIn)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	log := logger.WithContext(ctx)
	log.Info().
		Str("order_id", order.ID).
		Str("source", src.Kind).
		Str("payment_method", in.PaymentMethod).
		Int64("total", int64(order.Total)).
		Msg("Order placed")

	u.clearSource(ctx, shopperKey, src)

	result := &PlaceOrderResult{Order: order, Source: src.Kind}
	amount := order.Total
	if amount == 0 {
		amount = src.Total
	}
	payment, err := u.payments.CreatePayment(ctx, domain.CreatePaymentInput{
		OrderID: order.ID,
		Method:  in.PaymentMethod,
		Amount:  amount,
	})
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("Payment record not created")
	} else {
		result.Payment = payment
		if in.PaymentMethod == domain.PaymentMethodOnline {
			gw, err := u.payments.InitiateGateway(ctx, payment.ID)
			if err != nil {
				log.Warn().Err(err).Str("payment_id", payment.ID).Msg("Payment gateway session not opened")
			} else {
				result.Gateway = gw
			}
		}
	}

	if u.tracker != nil {
		u.tracker.TrackPurchase(ctx, order, in.ShippingAddress)
	}
	return result, nil
}

// validateItems re-checks the source against the live catalog.
func (u *CheckoutUsecase) validateItems(ctx context.Context, items []domain.DraftItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		product, err := u.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !product.IsPurchasable() {
			return fmt.Errorf("%s: %w", product.Name, domain.ErrProductUnavailable)
		}
		if len(product.Variants) > 0 && item.VariantID == nil {
			return fmt.Errorf("%s: %w", product.Name, domain.ErrVariantRequired)
		}
		if item.VariantID != nil {
			v := product.FindVariant(*item.VariantID)
			if v == nil {
				return fmt.Errorf("%s: %w", product.Name, domain.ErrProductUnavailable)
			}
			if item.Quantity > v.Stock {
				return fmt.Errorf("%s: %w", item.Name, domain.ErrInsufficientStock)
			}
		}
	}
	return nil
}

// clearSource drops the draft, or takes the ordered quantities out of the
// cart under its lock.
func (u *CheckoutUsecase) clearSource(ctx context.Context, shopperKey string, src checkout.Source) {
	if src.Kind == domain.CheckoutSourceDraft {
		u.bridge.Clear(ctx, shopperKey)
		return
	}
	_, _ = u.carts.Update(ctx, shopperKey, func(st *cart.Store) error {
		for _, item := range src.Items {
			key := domain.NewLineKey(item.ProductID, item.VariantID)
			left := st.State().Quantity(key) - item.Quantity
			st.Dispatch(ctx, cart.UpdateQuantity{Key: key, Quantity: left})
		}
		return nil
	})
}
