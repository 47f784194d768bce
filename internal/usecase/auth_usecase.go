package usecase

import (
	"context"
	"strings"

	"lapak-storefront/internal/cart"
	"lapak-storefront/internal/domain"
)

type AuthUsecase struct {
	remote   domain.AuthGateway
	sessions *SessionUsecase
	carts    *cart.Service
}

func NewAuthUsecase(remote domain.AuthGateway, sessions *SessionUsecase, carts *cart.Service) *AuthUsecase {
	return &AuthUsecase{remote: remote, sessions: sessions, carts: carts}
}

// LoginResult is a started session and the user it belongs to.
type LoginResult struct {
	Session *domain.Session `json:"-"`
	User    domain.User     `json:"user"`
}

// Login authenticates against the Remote Service, stores the token in a new
// session and folds the guest cart (if any) into the user's cart.
func (u *AuthUsecase) Login(ctx context.Context, email, password, guestCart string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	res, err := u.remote.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return u.begin(ctx, res, guestCart)
}

// Register creates the account and, when the Remote Service answers with a
// token, logs the user in straight away.
func (u *AuthUsecase) Register(ctx context.Context, in domain.RegisterInput, guestCart string) (*LoginResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	res, err := u.remote.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return &LoginResult{User: res.User}, nil
	}
	return u.begin(ctx, res, guestCart)
}

func (u *AuthUsecase) begin(ctx context.Context, res *domain.AuthResult, guestCart string) (*LoginResult, error) {
	sess, err := u.sessions.Start(ctx, res.Token)
	if err != nil {
		return nil, err
	}
	if sess.UserID == "" {
		sess.UserID = res.User.ID
	}
	if sess.Role == "" {
		sess.Role = res.User.Role.Name
	}

	if guestCart != "" {
		from := (&domain.Session{GuestCart: guestCart}).ShopperKey()
		u.carts.Merge(ctx, from, sess.ShopperKey())
	}
	return &LoginResult{Session: sess, User: res.User}, nil
}

func (u *AuthUsecase) Logout(ctx context.Context, sid string) error {
	return u.sessions.End(ctx, sid)
}

// Me returns the Remote Service's view of the current user.
func (u *AuthUsecase) Me(ctx context.Context) (*domain.User, error) {
	if !domain.SessionFromContext(ctx).Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	return u.remote.Profile(ctx)
}
