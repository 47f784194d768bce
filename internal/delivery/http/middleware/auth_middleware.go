package middleware

import (
	"context"
	"net/http"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"

	"github.com/google/uuid"
)

const (
	SessionCookie   = "sid"
	GuestCartCookie = "cart_id"

	guestCartMaxAge = 365 * 24 * 60 * 60
)

// SessionLoader resolves the caller from a session cookie or a bearer token.
type SessionLoader interface {
	Load(ctx context.Context, sid string) (*domain.Session, error)
	FromBearer(token string) (*domain.Session, error)
}

// Sessions puts a *domain.Session on every request. Browsers are identified
// by the sid cookie, API clients by a bearer token; everyone else is a guest.
// Every caller also gets a cart_id cookie so a guest cart survives until
// login.
type Sessions struct {
	loader       SessionLoader
	secureCookie bool
}

func NewSessions(loader SessionLoader, secureCookie bool) *Sessions {
	return &Sessions{loader: loader, secureCookie: secureCookie}
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := &domain.Session{}

		if token := utils.BearerToken(r); token != "" {
			bearer, err := s.loader.FromBearer(token)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sess = bearer
		} else if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			stored, err := s.loader.Load(ctx, c.Value)
			if err != nil {
				ClearSessionCookie(w, s.secureCookie)
			} else {
				sess = stored
			}
		}

		if c, err := r.Cookie(GuestCartCookie); err == nil && c.Value != "" {
			sess.GuestCart = c.Value
		} else {
			sess.GuestCart = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     GuestCartCookie,
				Value:    sess.GuestCart,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secureCookie,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   guestCartMaxAge,
			})
		}

		shopper := sess.ShopperKey()
		setShopper(ctx, shopper)
		l := logger.WithShopper(logger.WithContext(ctx), shopper)
		ctx = logger.NewContext(ctx, &l)
		ctx = domain.WithSession(ctx, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie hands the browser the opaque session id.
func SetSessionCookie(w http.ResponseWriter, sess *domain.Session, secure bool) {
	c := &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		c.Expires = sess.ExpiresAt
		c.MaxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	http.SetCookie(w, c)
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// RequireAuth rejects guests. Must run after Sessions.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.SessionFromContext(r.Context()).Authenticated() {
			utils.WriteError(w, http.StatusUnauthorized, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
