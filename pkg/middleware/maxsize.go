package middleware

import "net/http"

// MaxRequestSize caps request bodies; oversized reads inside a handler fail
// with a *http.MaxBytesError, which the JSON decode path reports as a 400.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
