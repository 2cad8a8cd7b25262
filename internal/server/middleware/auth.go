// Package middleware provides HTTP middleware for draft authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// ownerIDKey is the context key for storing the authenticated draft owner.
const ownerIDKey ContextKey = "ownerID"

// TokenValidator is an interface for validating bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (OwnerGetter, error)
}

// OwnerGetter is an interface for extracting the owner ID from token claims.
type OwnerGetter interface {
	OwnerID() uuid.UUID
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the owner ID to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := BearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ownerID := claims.OwnerID()
			if ownerID == uuid.Nil {
				unauthorized(w, "token has no owner")
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="drafts"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// OwnerID extracts the authenticated owner ID from the request context.
func OwnerID(r *http.Request) (uuid.UUID, error) {
	ownerID, ok := r.Context().Value(ownerIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("owner ID not found in request context")
	}
	return ownerID, nil
}

// WithOwnerID returns a context carrying ownerID, for tests and internal callers.
func WithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}
