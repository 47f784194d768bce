package middleware

import (
	"net/http"
	"strings"
)

// NewCORSMiddleware allows the comma-separated origins in allowedOrigin.
// Credentials are allowed so the session and cart cookies travel with
// cross-origin storefront requests.
func NewCORSMiddleware(allowedOrigin string) func(http.Handler) http.Handler {
	allowed := strings.Split(allowedOrigin, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, o := range allowed {
				if o == "*" && origin == "" {
					w.Header().Set("Access-Control-Allow-Origin", "*")
					break
				}
				if origin != "" && (o == "*" || o == origin) {
					// A credentialed response cannot use the wildcard.
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
