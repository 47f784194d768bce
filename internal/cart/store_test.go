package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lapak-storefront/internal/domain"
	memcache "lapak-storefront/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSlots struct {
	getErr error
	putErr error
	puts   int
}

func (f *failingSlots) Get(context.Context, string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return nil, domain.ErrSlotNotFound
}

func (f *failingSlots) Put(context.Context, string, []byte, time.Duration) error {
	f.puts++
	return f.putErr
}

func (f *failingSlots) Delete(context.Context, string) error { return nil }

func newSlots() *memcache.MemorySlots {
	return memcache.NewMemorySlots(time.Minute)
}

func TestStore_PersistsAndReopens(t *testing.T) {
	ctx := context.Background()
	slots := newSlots()

	st := Open(ctx, slots, "user:1")
	st.AddItem(ctx, productP1, 2, &variantA)
	st.AddItem(ctx, productP1, 1, &variantB)
	st.AddItem(ctx, productP2, 3, nil)
	before := st.State()

	reopened := Open(ctx, slots, "user:1")

	assert.Equal(t, before.Total, reopened.State().Total)
	for _, item := range before.Items {
		assert.Equal(t, item.Quantity, reopened.State().Quantity(item.Key()))
	}
	assert.Equal(t, 2, reopened.ItemQuantity("P1", strPtr("VA")))
	assert.Equal(t, domain.Money(75000), reopened.ItemTotal("P2", nil))
}

func TestStore_EncodeDecodeRoundTrip(t *testing.T) {
	s := Reduce(Empty(), AddItem{Product: productP1, Variant: &variantA, Quantity: 2})
	s = Reduce(s, AddItem{Product: productP2, Quantity: 1})

	raw, err := Encode(s.Items)
	require.NoError(t, err)
	items, err := Decode(raw)
	require.NoError(t, err)

	back := Reduce(Empty(), Hydrate{Items: items})
	assert.Equal(t, s.Total, back.Total)
	assert.Equal(t, s.Quantity(domain.LineKey{ProductID: "P1", VariantID: "VA"}), back.Quantity(domain.LineKey{ProductID: "P1", VariantID: "VA"}))
	assert.Equal(t, s.Quantity(domain.LineKey{ProductID: "P2"}), back.Quantity(domain.LineKey{ProductID: "P2"}))
}

func TestStore_CorruptSlotFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	slots := newSlots()
	require.NoError(t, slots.Put(ctx, domain.CartSlotPrefix+"guest:x", []byte(`{"items": nope`), 0))

	st := Open(ctx, slots, "guest:x")

	assert.Empty(t, st.State().Items)
	assert.Equal(t, domain.Money(0), st.State().Total)
}

func TestStore_MissingSlotIsEmpty(t *testing.T) {
	st := Open(context.Background(), newSlots(), "guest:new")
	assert.Empty(t, st.State().Items)
}

func TestStore_ReadErrorFallsBackToEmpty(t *testing.T) {
	st := Open(context.Background(), &failingSlots{getErr: errors.New("connection refused")}, "user:1")
	assert.Empty(t, st.State().Items)
}

func TestStore_WriteFailureDoesNotBlockState(t *testing.T) {
	ctx := context.Background()
	slots := &failingSlots{putErr: errors.New("disk full")}
	st := Open(ctx, slots, "user:1")

	state := st.AddItem(ctx, productP1, 2, nil)

	assert.Equal(t, domain.Money(20000), state.Total)
	assert.Equal(t, 1, slots.puts)
}

func TestStore_ClearPersistsEmptySequence(t *testing.T) {
	ctx := context.Background()
	slots := newSlots()
	st := Open(ctx, slots, "user:1")
	st.AddItem(ctx, productP1, 2, nil)
	st.ClearCart(ctx)

	raw, err := slots.Get(ctx, domain.CartSlotPrefix+"user:1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestService_MergeGuestIntoUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newSlots())

	svc.Dispatch(ctx, "guest:g", AddItem{Product: productP1, Quantity: 2})
	svc.Dispatch(ctx, "guest:g", AddItem{Product: productP2, Quantity: 1})
	svc.Dispatch(ctx, "user:u", AddItem{Product: productP1, Quantity: 3})

	merged := svc.Merge(ctx, "guest:g", "user:u")

	assert.Equal(t, 5, merged.Quantity(keyP1()))
	assert.Equal(t, 1, merged.Quantity(domain.LineKey{ProductID: "P2"}))
	assert.Equal(t, domain.Money(75000), merged.Total)
	assert.Empty(t, svc.View(ctx, "guest:g").Items)
}

func TestService_MergeSameKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newSlots())
	svc.Dispatch(ctx, "user:u", AddItem{Product: productP1, Quantity: 3})

	state := svc.Merge(ctx, "user:u", "user:u")
	assert.Equal(t, 3, state.Quantity(keyP1()))
}

func TestService_UpdateRefusalLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newSlots())
	svc.Dispatch(ctx, "user:u", AddItem{Product: productP1, Quantity: 1})

	_, err := svc.Update(ctx, "user:u", func(st *Store) error {
		return domain.ErrInsufficientStock
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, svc.View(ctx, "user:u").Quantity(keyP1()))
}

func TestService_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newSlots())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Dispatch(ctx, "user:u", AddItem{Product: productP1, Quantity: 1})
		}()
	}
	wg.Wait()

	state := svc.View(ctx, "user:u")
	assert.Equal(t, 50, state.Quantity(keyP1()))
	assert.Equal(t, domain.Money(500000), state.Total)
}
