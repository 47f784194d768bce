package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SessionUsecase holds Remote Service bearer tokens server-side, keyed by an
// opaque session id handed to the browser.
type SessionUsecase struct {
	slots   domain.SlotStore
	decoder *utils.TokenDecoder
	ttl     time.Duration
	now     func() time.Time
}

func NewSessionUsecase(slots domain.SlotStore, decoder *utils.TokenDecoder, ttl time.Duration) *SessionUsecase {
	return &SessionUsecase{slots: slots, decoder: decoder, ttl: ttl, now: time.Now}
}

type storedSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func sessionSlot(sid string) string {
	return domain.SessionSlotPrefix + sid
}

// Start stores token under a fresh session id. The slot lives until the token
// expires, capped at the configured session TTL.
func (u *SessionUsecase) Start(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := u.decoder.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	now := u.now()
	expires := now.Add(u.ttl)
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(expires) {
		expires = claims.ExpiresAt
	}

	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: expires,
	}
	raw, err := json.Marshal(storedSession{Token: token, UserID: claims.UserID, Role: claims.Role, ExpiresAt: expires})
	if err != nil {
		return nil, err
	}
	if err := u.slots.Put(ctx, sessionSlot(sess.ID), raw, expires.Sub(now)); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Load returns the session behind sid. Unknown, expired or unreadable
// sessions are ErrUnauthorized.
func (u *SessionUsecase) Load(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, domain.ErrUnauthorized
	}
	raw, err := u.slots.Get(ctx, sessionSlot(sid))
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			logger.WithContext(ctx).Warn().Err(err).Msg("Session slot unreadable")
		}
		return nil, domain.ErrUnauthorized
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil || stored.Token == "" {
		logger.WithContext(ctx).Warn().Msg("Session slot corrupt, discarding")
		_ = u.slots.Delete(ctx, sessionSlot(sid))
		return nil, domain.ErrUnauthorized
	}
	if !stored.ExpiresAt.IsZero() && u.now().After(stored.ExpiresAt) {
		_ = u.slots.Delete(ctx, sessionSlot(sid))
		return nil, domain.ErrUnauthorized
	}
	return &domain.Session{
		ID:        sid,
		Token:     stored.Token,
		UserID:    stored.UserID,
		Role:      stored.Role,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// FromBearer builds a request-scoped session for API clients that send the
// token themselves. Nothing is stored.
func (u *SessionUsecase) FromBearer(token string) (*domain.Session, error) {
	claims, err := u.decoder.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &domain.Session{
		Token:     token,
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// End forgets the session. Missing sessions are not an error.
func (u *SessionUsecase) End(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return u.slots.Delete(ctx, sessionSlot(sid))
}
