package domain

import (
	"context"
	"time"
)

type ContextKey string

const SessionContextKey ContextKey = "session"

type RoleRef struct {
	Name string `json:"name"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      RoleRef   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// Staff is a petugas or admin account managed from the back office.
type Staff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

type StaffInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

func (in StaffInput) Validate(creating bool) error {
	if in.Name == "" || in.Email == "" {
		return ErrInvalidInput
	}
	if in.Role != RoleAdmin && in.Role != RolePetugas {
		return ErrInvalidInput
	}
	if creating && in.Password == "" {
		return ErrInvalidInput
	}
	return nil
}

// Session is the per-request view of who is calling. Token is empty for guests.
type Session struct {
	ID        string
	Token     string
	UserID    string
	Role      string
	GuestCart string
	ExpiresAt time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// ShopperKey is the identity carts and drafts are stored under.
func (s *Session) ShopperKey() string {
	if s == nil {
		return ""
	}
	if s.UserID != "" {
		return "user:" + s.UserID
	}
	if s.GuestCart != "" {
		return "guest:" + s.GuestCart
	}
	return ""
}

// IsStaff covers both petugas and admin.
func (s *Session) IsStaff() bool {
	return s != nil && (s.Role == RoleAdmin || s.Role == RolePetugas)
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(SessionContextKey).(*Session)
	return s
}

// TokenFromContext returns the bearer token of the calling session, if any.
func TokenFromContext(ctx context.Context) string {
	if s := SessionFromContext(ctx); s != nil {
		return s.Token
	}
	return ""
}
