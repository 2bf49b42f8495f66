package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/infrastructure/http/response"
)

type authUserKey struct{}

type AuthMiddleware struct {
	tokenService outbound.TokenService
}

func NewAuthMiddleware(tokenService outbound.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the validated token claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*outbound.TokenClaims, bool) {
	claims, ok := ctx.Value(authUserKey{}).(*outbound.TokenClaims)
	return claims, ok
}

// ContextWithClaims is used by handler tests to simulate an authenticated
// request without running the middleware.
func ContextWithClaims(ctx context.Context, claims *outbound.TokenClaims) context.Context {
	return context.WithValue(ctx, authUserKey{}, claims)
}
