package middleware

import (
	"net/http"
)

// BodySizeLimit rejects bodies larger than maxBytes. A declared
// Content-Length over the limit is refused up front; otherwise the body is
// capped with http.MaxBytesReader. A non-positive limit disables the check.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"error":"Request Entity Too Large","message":"request body too large","code":413}` + "\n"))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
