package outbound

import (
	"errors"

	"github.com/invenra/invenra/domain/entity"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims is the identity extracted from a validated access token.
type TokenClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type TokenService interface {
	GenerateAccessToken(user *entity.User) (string, error)
	// GenerateRefreshToken returns an opaque 256-bit random secret,
	// base64-encoded. It carries no claims and is only meaningful
	// server-side.
	GenerateRefreshToken() (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	// ValidateExpiredAccessToken verifies signature, issuer and audience but
	// deliberately skips lifetime checks. Used only by the refresh flow.
	ValidateExpiredAccessToken(token string) (*TokenClaims, error)
	// AccessTokenTTLSeconds is the configured access-token lifetime, reported
	// to clients as expires_in.
	AccessTokenTTLSeconds() int
}
