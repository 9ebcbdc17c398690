package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/leadhub/server/internal/auth"
)

type contextKey string

const (
	identityKey contextKey = "admin_identity"
	tokenKey    contextKey = "admin_token"
)

// TokenVerifier checks a bearer token and returns the admin identity it proves
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

// AdminAuth validates the bearer token and attaches the admin identity and raw token to the context
func AdminAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrMissingToken):
					respondWithError(w, http.StatusUnauthorized, "Authorization token is required")
				case errors.Is(err, auth.ErrRevoked):
					respondWithError(w, http.StatusUnauthorized, "Session has expired. Please login again.")
				case errors.Is(err, auth.ErrInvalidToken):
					respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				case errors.Is(err, auth.ErrConfiguration):
					log.Printf("Admin authentication: JWT_SECRET is missing from configuration")
					respondWithError(w, http.StatusInternalServerError, "Server configuration error")
				default:
					log.Printf("Admin authentication error: %v", err)
					respondWithError(w, http.StatusInternalServerError, "Failed to verify session")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			ctx = context.WithValue(ctx, tokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// Any other form yields an empty string.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetIdentity returns the admin identity attached by AdminAuth
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// GetToken returns the raw bearer token attached by AdminAuth
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// respondWithError sends a JSON error envelope
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]any{"success": false, "message": message}
	_ = json.NewEncoder(w).Encode(response)
}
