package domain

import (
	"context"
	"time"
)

// SlotStore is a key-value store of opaque byte slots. A ttl of zero keeps
// the slot until it is deleted. Get returns ErrSlotNotFound for absent or
// expired slots.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Slot key prefixes
const (
	CartSlotPrefix    = "cart:"
	DraftSlotPrefix   = "checkout_draft:"
	SessionSlotPrefix = "session:"
)
