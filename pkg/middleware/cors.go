package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS applies the cross-origin policy for the allow-listed frontends.
// Each entry must be a full origin (scheme + host, no trailing slash).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
