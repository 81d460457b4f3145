// Package middleware provides HTTP middleware for bearer-token authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// ownerKey is the context key for storing the authenticated owner.
const ownerKey ContextKey = "owner"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (OwnerGetter, error)
}

// OwnerGetter is an interface for extracting the owner (token subject) from claims.
type OwnerGetter interface {
	GetOwner() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the owner to the
// request context. Tokens without a subject are rejected.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			owner := claims.GetOwner()
			if owner == "" {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

// bearerToken parses "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="skill-extractor"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner extracts the authenticated owner from the request context.
func GetOwner(r *http.Request) (string, error) {
	owner, ok := r.Context().Value(ownerKey).(string)
	if !ok || owner == "" {
		return "", fmt.Errorf("owner not found in request context")
	}
	return owner, nil
}
