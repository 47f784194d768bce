// Package checkout holds the draft bridge: a single-use slot that lets "buy
// now" and "checkout selected items" feed the checkout screen without touching
// the persistent cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

type Bridge struct {
	slots domain.SlotStore
	ttl   time.Duration
}

// NewBridge stores drafts in slots; unconsumed drafts expire after ttl.
func NewBridge(slots domain.SlotStore, ttl time.Duration) *Bridge {
	return &Bridge{slots: slots, ttl: ttl}
}

func slotKey(shopperKey string) string {
	return domain.DraftSlotPrefix + shopperKey
}

// Create replaces any unconsumed draft with a new one. The total is stored as
// given; the caller computed it.
func (b *Bridge) Create(ctx context.Context, shopperKey string, items []domain.DraftItem, total domain.Money) (*domain.CheckoutDraft, error) {
	if len(items) == 0 {
		return nil, domain.ErrDraftEmpty
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	b.Clear(ctx, shopperKey)

	draft := &domain.CheckoutDraft{
		Items: append([]domain.DraftItem(nil), items...),
		Total: total,
	}
	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	if err := b.slots.Put(ctx, slotKey(shopperKey), raw, b.ttl); err != nil {
		return nil, err
	}
	return draft, nil
}

// Consume reads the current draft without removing it. A missing or
// malformed draft reports false; it never errors. A storage failure is
// logged and also reported as false.
func (b *Bridge) Consume(ctx context.Context, shopperKey string) (*domain.CheckoutDraft, bool) {
	draft, ok, err := b.Lookup(ctx, shopperKey)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str("shopper", shopperKey).
			Msg("Checkout: draft read failed")
		return nil, false
	}
	return draft, ok
}

// Lookup is Consume for callers that must tell "no draft" apart from "could
// not read the draft". Only ErrSlotNotFound counts as absent.
func (b *Bridge) Lookup(ctx context.Context, shopperKey string) (*domain.CheckoutDraft, bool, error) {
	raw, err := b.slots.Get(ctx, slotKey(shopperKey))
	if errors.Is(err, domain.ErrSlotNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read checkout draft: %w", err)
	}
	draft, ok := ParseDraft(raw)
	if !ok {
		logger.WithContext(ctx).Warn().
			Str("shopper", shopperKey).
			Msg("Checkout: malformed draft ignored")
	}
	return draft, ok, nil
}

// Clear removes the draft. Failures are logged only; an orphaned draft
// expires with its slot.
func (b *Bridge) Clear(ctx context.Context, shopperKey string) {
	if err := b.slots.Delete(ctx, slotKey(shopperKey)); err != nil {
		logger.WithContext(ctx).Warn().Err(err).
			Str("shopper", shopperKey).
			Msg("Checkout: draft clear failed")
	}
}

type draftShape struct {
	Items *[]domain.DraftItem `json:"items"`
	Total *float64            `json:"total"`
}

// ParseDraft validates a stored draft: it needs an items array with at least
// one entry and a numeric total.
func ParseDraft(raw []byte) (*domain.CheckoutDraft, bool) {
	var shape draftShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, false
	}
	if shape.Items == nil || len(*shape.Items) == 0 || shape.Total == nil {
		return nil, false
	}
	total := domain.Money(math.Round(*shape.Total))
	return &domain.CheckoutDraft{Items: *shape.Items, Total: total}, true
}

// Source is what the checkout screen renders and submits.
type Source struct {
	Kind  string             `json:"source"`
	Items []domain.DraftItem `json:"items"`
	Total domain.Money       `json:"total"`
}

// Resolve picks the checkout source: a valid draft first, else the cart.
// It fails rather than fall back when the draft slot cannot be read, so a
// pending buy-now never turns into a whole-cart checkout.
func (b *Bridge) Resolve(ctx context.Context, shopperKey string, c cart.State) (Source, error) {
	draft, ok, err := b.Lookup(ctx, shopperKey)
	if err != nil {
		return Source{}, err
	}
	if ok {
		return Source{Kind: domain.CheckoutSourceDraft, Items: draft.Items, Total: draft.Total}, nil
	}
	items := make([]domain.DraftItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, line.DraftItem())
	}
	return Source{Kind: domain.CheckoutSourceCart, Items: items, Total: c.Total}, nil
}
