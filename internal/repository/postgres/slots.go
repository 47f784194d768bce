package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"

	"github.com/jackc/pgx/v5"
)

const (
	getSlotSQL = `SELECT value FROM storage_slots
WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`

	putSlotSQL = `INSERT INTO storage_slots (key, value, expires_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`

	deleteSlotSQL = `DELETE FROM storage_slots WHERE key = $1`

	purgeSlotsSQL = `DELETE FROM storage_slots WHERE expires_at IS NOT NULL AND expires_at <= $1`
)

// SlotStore implements domain.SlotStore on the storage_slots table.
type SlotStore struct {
	db  DBTX
	now func() time.Time
}

func NewSlotStore(db DBTX) *SlotStore {
	return &SlotStore{db: db, now: time.Now}
}

var _ domain.SlotStore = (*SlotStore)(nil)

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getSlotSQL, key, s.now()).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return value, nil
}

func (s *SlotStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	if _, err := s.db.Exec(ctx, putSlotSQL, key, value, expiresAt, now); err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (s *SlotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, deleteSlotSQL, key); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

// PurgeExpired removes slots whose TTL has passed and returns how many went.
func (s *SlotStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, purgeSlotsSQL, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunJanitor purges expired slots every interval until ctx is done.
func (s *SlotStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("Slot janitor failed")
				continue
			}
			if n > 0 {
				logger.Get().Debug().Int64("purged", n).Msg("Expired slots removed")
			}
		}
	}
}
