package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"office-converter/internal/domain"
)

// APIKeyMiddleware requires "Authorization: Bearer <key>" on every request
// when an API key is configured. An empty key disables authentication; who
// may call the service is deployment configuration, not application logic.
func APIKeyMiddleware(apiKey string, logger domain.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(apiKey)) != 1 {
				logger.Warn("Rejected request with invalid API key", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
