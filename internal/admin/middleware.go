package admin

import (
	"net/http"

	"crease/pkg/platform/httputil"
)

// RequireSession guards moderation routes: requests must present a bearer
// token whose session is still live. The resolved session is not forwarded;
// there is a single shared admin identity.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}

		if _, err := s.Verify(r.Context(), token); err != nil {
			httputil.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
