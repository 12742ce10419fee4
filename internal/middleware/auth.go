package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"farmstead/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

// AuthMiddleware is the request gate: every protected route passes through
// RequireAuth, which either binds verified claims to the request context or
// terminates the request with a machine-readable code the client can branch
// on.
type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, http.StatusUnauthorized, "NO_AUTH_HEADER", "No authorization header")
			return
		}

		// The scheme must be exactly "Bearer "; anything else is a
		// misconfigured client, not a stale session.
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "INVALID_TOKEN_FORMAT", "Invalid token format")
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "EMPTY_TOKEN", "Empty token")
			return
		}

		claims, err := m.verifier.Verify(token)
		switch {
		case errors.Is(err, model.ErrTokenExpired):
			writeAuthError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired")
			return
		case errors.Is(err, model.ErrTokenInvalid):
			writeAuthError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		case err != nil:
			writeAuthError(w, http.StatusInternalServerError, "SERVER_ERROR", "Server error")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles guards admin-only routes. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "NO_AUTH_HEADER", "Authentication required")
				return
			}

			if _, exists := roleSet[strings.ToLower(claims.Role)]; !exists {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.ErrorResponse{Message: message, Code: code})
}
