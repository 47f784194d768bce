package middleware

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/utils"
)

// RequireStaff admits petugas and admin accounts. The Remote Service checks
// roles again; this only spares it calls that would be refused.
func RequireStaff(next http.Handler) http.Handler {
	return requireRole((*domain.Session).IsStaff, next)
}

// RequireAdmin admits admin accounts only.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole((*domain.Session).IsAdmin, next)
}

func requireRole(allowed func(*domain.Session) bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := domain.SessionFromContext(r.Context())
		if !sess.Authenticated() {
			utils.WriteError(w, http.StatusUnauthorized, "Login required")
			return
		}
		if !allowed(sess) {
			utils.WriteError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
