package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
)

var (
	ErrMissingSecret   = errors.New("jwt signing secret is not configured")
	ErrMissingIssuer   = errors.New("jwt issuer is not configured")
	ErrMissingAudience = errors.New("jwt audience is not configured")
)

type accessTokenClaims struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTService signs and validates HS256 access tokens and generates the opaque
// refresh secrets. It is stateless: a pure function of secret, claims and
// time.
type JWTService struct {
	secret         []byte
	issuer         string
	audience       string
	accessTokenTTL time.Duration
}

type Options struct {
	Secret         string
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration
}

func NewJWTService(opts Options) (*JWTService, error) {
	if opts.Secret == "" {
		return nil, ErrMissingSecret
	}
	if opts.Issuer == "" {
		return nil, ErrMissingIssuer
	}
	if opts.Audience == "" {
		return nil, ErrMissingAudience
	}
	ttl := opts.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret:         []byte(opts.Secret),
		issuer:         opts.Issuer,
		audience:       opts.Audience,
		accessTokenTTL: ttl,
	}, nil
}

func (s *JWTService) GenerateAccessToken(user *entity.User) (string, error) {
	now := time.Now().UTC()
	claims := accessTokenClaims{
		Name:  user.Username,
		Email: user.Email,
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// GenerateRefreshToken returns 32 bytes from crypto/rand, base64-encoded.
func (s *JWTService) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	claims := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		return nil, s.mapValidationError(err)
	}
	if !token.Valid {
		return nil, outbound.ErrInvalidToken
	}
	return toTokenClaims(claims), nil
}

// ValidateExpiredAccessToken verifies signature, issuer and audience but
// skips lifetime validation. Only the refresh flow may use it.
func (s *JWTService) ValidateExpiredAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &accessTokenClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil || !token.Valid {
		return nil, outbound.ErrInvalidToken
	}

	// Lifetime is skipped; issuer and audience are still enforced by hand.
	if claims.Issuer != s.issuer || !audienceContains(claims.Audience, s.audience) {
		return nil, outbound.ErrInvalidToken
	}

	return toTokenClaims(claims), nil
}

func (s *JWTService) AccessTokenTTLSeconds() int {
	return int(s.accessTokenTTL.Seconds())
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

func (s *JWTService) mapValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return outbound.ErrTokenExpired
	}
	return outbound.ErrInvalidToken
}

func toTokenClaims(claims *accessTokenClaims) *outbound.TokenClaims {
	return &outbound.TokenClaims{
		UserID:   claims.Subject,
		Username: claims.Name,
		Email:    claims.Email,
		Roles:    claims.Roles,
	}
}

func audienceContains(audience jwt.ClaimStrings, want string) bool {
	for _, a := range audience {
		if a == want {
			return true
		}
	}
	return false
}
