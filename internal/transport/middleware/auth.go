package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/pep299/news-summarizer/internal/transport/response"
)

// Auth requires "Authorization: Bearer <token>". An empty token disables the check.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		expected := []byte("Bearer " + token)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				response.WriteUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
