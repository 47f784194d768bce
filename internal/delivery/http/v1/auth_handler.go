package v1

import (
	"net/http"

	"lapak-storefront/internal/delivery/http/middleware"
	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

type AuthHandler struct {
	authUC       *usecase.AuthUsecase
	secureCookie bool
}

func NewAuthHandler(authUC *usecase.AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{authUC: authUC, secureCookie: secureCookie}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}

	res, err := h.authUC.Login(r.Context(), req.Email, req.Password, session(r).GuestCart)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, res.Session, h.secureCookie)
	logger.WithContext(r.Context()).Info().Str("user_id", res.User.ID).Msg("User logged in")
	utils.WriteData(w, http.StatusOK, res)
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterInput
	if !decode(w, r, &req) {
		return
	}

	res, err := h.authUC.Register(r.Context(), req, session(r).GuestCart)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if res.Session != nil {
		middleware.SetSessionCookie(w, res.Session, h.secureCookie)
	}
	utils.WriteData(w, http.StatusCreated, res)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUC.Logout(r.Context(), session(r).ID); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("Session delete failed")
	}
	middleware.ClearSessionCookie(w, h.secureCookie)
	utils.WriteMessage(w, http.StatusOK, "Logged out")
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUC.Me(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, user)
}
