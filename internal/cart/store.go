package cart

import (
	"context"
	"errors"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

// Store is one shopper's cart bound to its storage slot. It is not safe for
// concurrent use; Service serializes access per shopper.
type Store struct {
	key   string
	slots domain.SlotStore
	state State
}

// Open reads the shopper's slot and seeds the store with it. Missing or
// corrupt data yields an empty cart.
func Open(ctx context.Context, slots domain.SlotStore, shopperKey string) *Store {
	s := &Store{
		key:   domain.CartSlotPrefix + shopperKey,
		slots: slots,
		state: Empty(),
	}

	log := logger.WithShopper(logger.WithContext(ctx), shopperKey)
	raw, err := slots.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			log.Warn().Err(err).Msg("Cart: slot read failed, starting empty")
		}
		return s
	}

	items, err := Decode(raw)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(raw)).Msg("Cart: corrupt slot, starting empty")
		return s
	}
	s.state = Reduce(s.state, Hydrate{Items: items})
	return s
}

// Decode parses a persisted line-item sequence.
func Decode(raw []byte) ([]domain.CartLineItem, error) {
	var items []domain.CartLineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Encode serializes the line-item sequence for the slot.
func Encode(items []domain.CartLineItem) ([]byte, error) {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return json.Marshal(items)
}

func (s *Store) State() State {
	return s.state
}

// Dispatch applies cmd and persists the resulting items. A failed write is
// logged; the in-memory state still advances.
func (s *Store) Dispatch(ctx context.Context, cmd Command) State {
	s.state = Reduce(s.state, cmd)
	s.persist(ctx)
	return s.state
}

func (s *Store) persist(ctx context.Context) {
	raw, err := Encode(s.state.Items)
	if err == nil {
		err = s.slots.Put(ctx, s.key, raw, 0)
	}
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Str("slot", s.key).Msg("Cart: persist failed")
	}
}

func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int, variant *domain.Variant) State {
	return s.Dispatch(ctx, AddItem{Product: product, Variant: variant, Quantity: quantity})
}

func (s *Store) RemoveItem(ctx context.Context, productID string, variantID *string) State {
	return s.Dispatch(ctx, RemoveItem{Key: domain.NewLineKey(productID, variantID)})
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, variantID *string) State {
	return s.Dispatch(ctx, UpdateQuantity{Key: domain.NewLineKey(productID, variantID), Quantity: quantity})
}

func (s *Store) ClearCart(ctx context.Context) State {
	return s.Dispatch(ctx, ClearCart{})
}

func (s *Store) ItemQuantity(productID string, variantID *string) int {
	return s.state.Quantity(domain.NewLineKey(productID, variantID))
}

func (s *Store) ItemTotal(productID string, variantID *string) domain.Money {
	return s.state.ItemTotal(domain.NewLineKey(productID, variantID))
}
