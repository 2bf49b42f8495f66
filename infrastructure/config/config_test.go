package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/invenra_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "invenra")
	t.Setenv("JWT_AUDIENCE", "invenra-api")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 10, cfg.RateLimitIPAttempts)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitIPWindow)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "30")
	t.Setenv("RATE_LIMIT_IP_WINDOW", "90")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 90*time.Second, cfg.RateLimitIPWindow)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_RequiredSettings(t *testing.T) {
	cases := []struct {
		name    string
		unset   string
		wantErr error
	}{
		{"database url", "DATABASE_URL", ErrMissingDatabaseURL},
		{"jwt secret", "JWT_SECRET", ErrMissingJWTSecret},
		{"jwt issuer", "JWT_ISSUER", ErrMissingJWTIssuer},
		{"jwt audience", "JWT_AUDIENCE", ErrMissingJWTAudience},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.unset, "")

			_, err := Load()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "zero")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidTokenTTL)

	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidTokenTTL)
}
