package httpapi

import (
	"net/http"

	"github.com/pentalign/backend/internal/common"
)

// authenticate is the per-request authentication gate. It never rejects a
// request: an absent header or a token that fails verification simply
// leaves the request unauthenticated, and authorization happens downstream
// in the handlers.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AccessTokenHeaderName)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := s.codec.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := PrincipalFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.auth.UserByUsername(r.Context(), claims.Subject)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if s.codec.IsValidFor(token, user) {
			r = r.WithContext(ContextWithPrincipal(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}
