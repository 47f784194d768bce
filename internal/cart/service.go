package cart

import (
	"context"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

// Service hands out stores and serializes open → mutate → persist per
// shopper, so two requests for the same cart cannot interleave.
type Service struct {
	slots domain.SlotStore
	locks utils.KeyedMutex
}

func NewService(slots domain.SlotStore) *Service {
	return &Service{slots: slots}
}

func (s *Service) lock(key string) func() {
	return s.locks.Lock(key)
}

// View returns the shopper's current cart.
func (s *Service) View(ctx context.Context, shopperKey string) State {
	unlock := s.lock(shopperKey)
	defer unlock()
	return Open(ctx, s.slots, shopperKey).State()
}

// Update runs fn against the shopper's store while holding its lock. fn may
// inspect state and refuse with an error before dispatching anything.
func (s *Service) Update(ctx context.Context, shopperKey string, fn func(*Store) error) (State, error) {
	unlock := s.lock(shopperKey)
	defer unlock()

	store := Open(ctx, s.slots, shopperKey)
	if err := fn(store); err != nil {
		return store.State(), err
	}
	return store.State(), nil
}

// Dispatch applies a single command to the shopper's cart.
func (s *Service) Dispatch(ctx context.Context, shopperKey string, cmd Command) State {
	state, _ := s.Update(ctx, shopperKey, func(st *Store) error {
		st.Dispatch(ctx, cmd)
		return nil
	})
	return state
}

// Merge folds every line of the from cart into the to cart (quantities add
// per key) and empties the from cart. Used when a guest logs in.
func (s *Service) Merge(ctx context.Context, fromKey, toKey string) State {
	if fromKey == "" || fromKey == toKey {
		return s.View(ctx, toKey)
	}

	// Fixed lock order avoids deadlock between two opposite merges.
	first, second := fromKey, toKey
	if second < first {
		first, second = second, first
	}
	unlockFirst := s.lock(first)
	defer unlockFirst()
	unlockSecond := s.lock(second)
	defer unlockSecond()

	from := Open(ctx, s.slots, fromKey)
	to := Open(ctx, s.slots, toKey)
	if len(from.State().Items) == 0 {
		return to.State()
	}

	lines := len(from.State().Items)
	for _, item := range from.State().Items {
		to.Dispatch(ctx, AddItem{Product: item.Product, Variant: item.Variant, Quantity: item.Quantity})
	}
	from.ClearCart(ctx)

	logger.WithContext(ctx).Info().
		Str("from", fromKey).
		Str("to", toKey).
		Int("lines", lines).
		Msg("Cart: merged guest cart")
	return to.State()
}
