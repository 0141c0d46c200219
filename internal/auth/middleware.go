package auth

import (
	"net/http"
	"strings"

	"github.com/zetacorp/billing/internal/http/respond"
)

// Middleware rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func Middleware(tokens *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				respond.Msg(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}
