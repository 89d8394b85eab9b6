package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/infrastructure/jwt"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/utils"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyRole   contextKey = "role"
)

// TokenValidator checks an identity token and returns its claims
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.CustomClaims, error)
}

type AuthMiddleWare struct {
	tokens TokenValidator
}

// NewAuthMiddleware creates the authentication middleware backed by tokens
func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleWare {
	return &AuthMiddleWare{tokens: tokens}
}

// RequireAuth rejects requests without a valid Bearer token with 401. On
// success the user id and role from the token are stored in the context.
func (m *AuthMiddleWare) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			utils.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}

		claims, err := m.tokens.ValidateToken(tokenStr)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.UserID, claims.Role)))
	})
}

// FlexibleAuth lets requests without an Authorization header through as
// guests. A header that is present must carry a valid Bearer token, otherwise
// the request is rejected with 401 like RequireAuth.
func (m *AuthMiddleWare) FlexibleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		m.RequireAuth(next).ServeHTTP(w, r)
	})
}

// RequireRole only lets through callers whose role is one of roles. It must
// run after RequireAuth. A caller with another role gets a 400.
func (m *AuthMiddleWare) RequireRole(roles ...string) func(http.Handler) http.Handler {
	message := "only " + strings.Join(roles, " or ") + " users can perform this operation"
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := Role(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "user not authenticated")
				return
			}
			if !lo.Contains(roles, role) {
				utils.WriteError(w, http.StatusBadRequest, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Protect is RequireAuth followed by RequireRole when roles are given
func (m *AuthMiddleWare) Protect(h http.HandlerFunc, roles ...string) http.Handler {
	var inner http.Handler = h
	if len(roles) > 0 {
		inner = m.RequireRole(roles...)(inner)
	}
	return m.RequireAuth(inner)
}

// WithIdentity stores the caller identity in ctx
func WithIdentity(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserId, userID)
	return context.WithValue(ctx, ContextKeyRole, role)
}

// UserID returns the authenticated user id, if any
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserId).(uuid.UUID)
	return id, ok
}

// Role returns the authenticated user's role, if any
func Role(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextKeyRole).(string)
	return role, ok
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
