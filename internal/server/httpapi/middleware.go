package httpapi

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

// requireAuth extracts the bearer token, resolves it to the caller's
// account id and stores it on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Authorization header is missing"})
			return
		}

		sub, err := s.verifier.Subject(token)
		if err != nil {
			s.logger.Warn(r.Context(), "bearer token rejected", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the authenticated account id set by requireAuth.
func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
