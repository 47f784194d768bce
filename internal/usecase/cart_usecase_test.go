package usecase

import (
	"context"
	"testing"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopper = "user:u1"

func TestCartUsecase_AddAndView(t *testing.T) {
	h := newHarness(kaos, kemeja)
	ctx := context.Background()

	_, err := h.cartUC.AddItem(ctx, shopper, "P1", nil, 2)
	require.NoError(t, err)
	_, err = h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-A"), 2)
	require.NoError(t, err)
	v, err := h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-B"), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.Money(20000+30000+12000), v.Total)
	assert.Equal(t, "Rp 62.000", v.TotalFormatted)
	assert.Equal(t, 5, v.Count)
	require.Len(t, v.Items, 3)
	assert.Equal(t, "M", v.Items[1].VariantLabel)
	assert.Equal(t, domain.Money(15000), v.Items[1].UnitPrice)
	assert.Equal(t, "Rp 30.000", v.Items[1].SubtotalFormatted)

	again, err := h.cartUC.View(ctx, shopper)
	require.NoError(t, err)
	assert.Equal(t, v, again)
}

func TestCartUsecase_AddValidatesBeforeDispatch(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		variantID *string
		quantity  int
		want      error
	}{
		{"zero quantity", "P1", nil, 0, domain.ErrInvalidInput},
		{"unknown product", "NOPE", nil, 1, domain.ErrNotFound},
		{"inactive product", "P4", nil, 1, domain.ErrProductUnavailable},
		{"variant not chosen", "P2", nil, 1, domain.ErrVariantRequired},
		{"unknown variant", "P2", strPtr("V-Z"), 1, domain.ErrNotFound},
		{"above stock", "P2", strPtr("V-B"), 2, domain.ErrInsufficientStock},
		{"above max quantity", "P1", nil, 11, domain.ErrQuantityLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(kaos, kemeja, habis)
			_, err := h.cartUC.AddItem(context.Background(), shopper, tt.productID, tt.variantID, tt.quantity)
			assert.ErrorIs(t, err, tt.want)

			v, _ := h.cartUC.View(context.Background(), shopper)
			assert.Empty(t, v.Items)
		})
	}
}

func TestCartUsecase_StockCountsExistingQuantity(t *testing.T) {
	h := newHarness(kemeja)
	ctx := context.Background()

	_, err := h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-A"), 4)
	require.NoError(t, err)
	_, err = h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-A"), 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	v, _ := h.cartUC.View(ctx, shopper)
	assert.Equal(t, 4, v.Items[0].Quantity)
}

func TestCartUsecase_SingleVariantIsAutoSelected(t *testing.T) {
	h := newHarness(topi)

	v, err := h.cartUC.AddItem(context.Background(), shopper, "P3", nil, 1)

	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	require.NotNil(t, v.Items[0].VariantID)
	assert.Equal(t, "V-T", *v.Items[0].VariantID)
	assert.Equal(t, "Hitam", v.Items[0].VariantLabel)
}

func TestCartUsecase_UpdateQuantity(t *testing.T) {
	h := newHarness(kaos, kemeja)
	ctx := context.Background()
	_, _ = h.cartUC.AddItem(ctx, shopper, "P1", nil, 2)
	_, _ = h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-A"), 1)

	v, err := h.cartUC.UpdateQuantity(ctx, shopper, "P1", nil, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.Money(50000+15000), v.Total)

	_, err = h.cartUC.UpdateQuantity(ctx, shopper, "P2", strPtr("V-A"), 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = h.cartUC.UpdateQuantity(ctx, shopper, "P2", strPtr("V-B"), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	v, err = h.cartUC.UpdateQuantity(ctx, shopper, "P1", nil, 0)
	require.NoError(t, err)
	require.Len(t, v.Items, 1)
	assert.Equal(t, domain.Money(15000), v.Total)
}

func TestCartUsecase_UpdateQuantityUnknownVariant(t *testing.T) {
	h := newHarness(kemeja)
	ctx := context.Background()
	gone := &domain.Variant{ID: "V-GONE", ProductID: "P2", Stock: 1}
	h.carts.Dispatch(ctx, shopper, cart.AddItem{Product: kemeja.Snapshot(), Variant: gone, Quantity: 1})

	_, err := h.cartUC.UpdateQuantity(ctx, shopper, "P2", strPtr("V-GONE"), 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, h.carts.View(ctx, shopper).Quantity(domain.NewLineKey("P2", strPtr("V-GONE"))))
}

func TestCartUsecase_RemoveAndClear(t *testing.T) {
	h := newHarness(kaos, kemeja)
	ctx := context.Background()
	_, _ = h.cartUC.AddItem(ctx, shopper, "P1", nil, 2)
	_, _ = h.cartUC.AddItem(ctx, shopper, "P2", strPtr("V-A"), 1)

	v, err := h.cartUC.RemoveItem(ctx, shopper, "P2", strPtr("V-A"))
	require.NoError(t, err)
	assert.Equal(t, domain.Money(20000), v.Total)

	v, err = h.cartUC.Clear(ctx, shopper)
	require.NoError(t, err)
	assert.Empty(t, v.Items)
	assert.Zero(t, v.Total)
	assert.Equal(t, "Rp 0", v.TotalFormatted)
}

func TestCartUsecase_RequiresShopper(t *testing.T) {
	h := newHarness(kaos)
	_, err := h.cartUC.AddItem(context.Background(), "", "P1", nil, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = h.cartUC.View(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
