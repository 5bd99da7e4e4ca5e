package request

import (
	"net/http"
)

// BodyLimit caps request body size via http.MaxBytesReader. Reads past the
// limit fail and the connection is closed. Apply it before any JSON decoding;
// routes accepting file uploads need a cap that clears the upload.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
