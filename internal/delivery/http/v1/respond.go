package v1

import (
	"errors"
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/infrastructure/remote"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

// writeErr answers with the status err maps to. Remote Service messages for
// 4xx answers are passed through since they are meant for the user.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= 500 {
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	utils.WriteError(w, status, msg)
}

func statusFor(err error) (int, string) {
	var apiErr *remote.APIError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, messageOr(err, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, messageOr(err, "Forbidden")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, messageOr(err, "Not found")
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrDraftEmpty),
		errors.Is(err, domain.ErrVariantRequired),
		errors.Is(err, domain.ErrQuantityLimit):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrProductUnavailable):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, messageOr(err, "Invalid input")
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, messageOr(err, http.StatusText(apiErr.StatusCode))
		}
		return http.StatusBadGateway, "Upstream service error"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// messageOr prefers the Remote Service's own message.
func messageOr(err error, fallback string) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, domain.ErrInvalidInput) && err != domain.ErrInvalidInput {
		return err.Error()
	}
	return fallback
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.ReadJSON(w, r, dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func session(r *http.Request) *domain.Session {
	return domain.SessionFromContext(r.Context())
}
