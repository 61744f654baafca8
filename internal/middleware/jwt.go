package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/learnmath/learnmath/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims returns a context carrying the given session claims.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// Claims returns the session claims stored by RequireAuth for this request.
func Claims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// UserID returns the authenticated user id for this request.
func UserID(ctx context.Context) (int64, bool) {
	c, ok := Claims(ctx)
	if !ok {
		return 0, false
	}
	return c.UserID, true
}

// RequireAuth extracts a bearer token from the Authorization header and
// verifies it. A missing header is 401; a token that fails verification
// (malformed, bad signature, expired) is 403. The distinction is observable
// to clients and must not collapse. On success the decoded claims are placed
// in the request context for the downstream handler only.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSONError(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
			if tokenStr == "" {
				writeJSONError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, "invalid or expired token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
