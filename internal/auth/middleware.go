package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the session claim we store.
type contextKey string

const claimKey contextKey = "sessionClaim"

// RequireAuth is the middleware guarding every protected route.
//
// It expects "Authorization: Bearer <token>", verifies the token, and stores
// the resulting SessionClaim in the request context. A missing, malformed,
// or mis-signed token ends the request with 401 — the generic message does
// not say which of the three it was.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				unauthorized(w)
				return
			}

			claim, err := tokens.Verify(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimFromContext retrieves the authenticated session claim placed in the
// context by RequireAuth. The bool is false on routes that skipped the
// middleware — protected handlers treat that as a programming error.
func ClaimFromContext(ctx context.Context) (SessionClaim, bool) {
	claim, ok := ctx.Value(claimKey).(SessionClaim)
	return claim, ok && claim.UserID != ""
}

// bearerToken extracts the token from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthenticated","message":"invalid jwt token"}`))
}
