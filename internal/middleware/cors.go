// Package middleware provides HTTP middleware for the newsletter API.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins is the allow-list of browser origins. Empty denies every
	// cross-origin request.
	AllowedOrigins []string

	// AllowCredentials lets browsers send cookies and auth headers.
	AllowCredentials bool

	// MaxAge is the value for Access-Control-Max-Age (in seconds).
	MaxAge int
}

// DefaultCORSConfig returns the policy used by the API: every method and
// header is accepted from allow-listed origins, with credentials.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		MaxAge:           600,
	}
}

// allMethods is what "all methods" means for preflight responses.
var allMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORS returns a middleware that grants cross-origin access only to
// cfg.AllowedOrigins. Other origins get no Access-Control-* headers.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		// go-chi/cors treats an empty list as "*".
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   allMethods,
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
