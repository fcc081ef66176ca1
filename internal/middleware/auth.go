package middleware

import (
	"context"
	"net/http"
	"strings"

	"gsep-planner/internal/auth"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwt  *auth.JWTManager
	logr *zap.Logger
}

type contextKey string

const (
	ContextSubjectKey contextKey = "subject"
	ContextAuthMethod contextKey = "authMethod"
)

func NewAuthMiddleware(jwt *auth.JWTManager, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, logr: logr}
}

// RequireAdmin validates the bearer token and its admin role, then attaches
// the subject to the request context.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			http.Error(w, "invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwt.VerifyToken(tokenString)
		if err != nil {
			m.logr.Warn("token parse error", zap.Error(err))
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		if role, _ := claims["role"].(string); role != auth.RoleAdmin {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}

		subject, _ := claims["sub"].(string)
		method, _ := claims["auth_method"].(string)

		ctx := context.WithValue(r.Context(), ContextSubjectKey, subject)
		ctx = context.WithValue(ctx, ContextAuthMethod, method)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Subject returns the admin subject attached by RequireAdmin.
func Subject(ctx context.Context) string {
	s, _ := ctx.Value(ContextSubjectKey).(string)
	return s
}
