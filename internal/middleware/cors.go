// Package middleware provides HTTP middleware for the guitarchords API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers for allowedOrigins.
// Each entry must be a full origin (scheme + host, no trailing slash). The
// identity header set by the fronting proxy is allowed so a browser client
// talking to a dev proxy can forward it.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", UsernameHeader},
		ExposedHeaders: []string{"X-Request-Id", "X-Total-Count"},
		MaxAge:         600,
	})
	return c.Handler
}
