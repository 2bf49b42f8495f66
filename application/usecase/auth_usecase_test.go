package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/service/jwt"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/infrastructure/service/password"
	"github.com/invenra/invenra/pkg/apperror"
)

type mockUserRepository struct {
	users map[string]*entity.User
	// beforeRotate and beforeReload simulate a concurrent writer sneaking in
	// between the token lookup and the conditional update.
	beforeRotate func()
	beforeReload func()
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*entity.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return outbound.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.beforeReload != nil {
		m.beforeReload()
	}
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsernameAndRefreshToken(ctx context.Context, username, refreshToken string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Username == username && user.RefreshToken != nil && *user.RefreshToken == refreshToken {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) RotateRefreshToken(ctx context.Context, userID string, previous *string, next string, issuedAt, expiresAt time.Time) (bool, error) {
	if m.beforeRotate != nil {
		m.beforeRotate()
	}
	user, exists := m.users[userID]
	if !exists {
		return false, nil
	}
	if previous == nil {
		if user.RefreshToken != nil {
			return false, nil
		}
	} else {
		if user.RefreshToken == nil || *user.RefreshToken != *previous {
			return false, nil
		}
	}
	user.RefreshToken = &next
	user.RefreshIssuedAt = &issuedAt
	user.RefreshExpiresAt = &expiresAt
	return true, nil
}

func (m *mockUserRepository) ClearRefreshToken(ctx context.Context, username string) (bool, error) {
	for _, user := range m.users {
		if user.Username == username {
			user.RefreshToken = nil
			user.RefreshIssuedAt = nil
			user.RefreshExpiresAt = nil
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthUseCase(t *testing.T, repo *mockUserRepository) (*AuthUseCase, outbound.TokenService) {
	t.Helper()

	tokenService, err := jwt.NewJWTService(jwt.Options{
		Secret:         "test-secret",
		Issuer:         "invenra",
		Audience:       "invenra-api",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})
	uc := NewAuthUseCase(repo, tokenService, password.NewBcryptPasswordService(4), log, 7*24*time.Hour)
	return uc, tokenService
}

func registerAlice(t *testing.T, uc *AuthUseCase) *inbound.AuthResponse {
	t.Helper()
	res, err := uc.Register(context.Background(), inbound.RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.NoError(t, err)
	return res
}

func TestAuthUseCase_Register(t *testing.T) {
	t.Run("success issues a full session", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, tokenService := newTestAuthUseCase(t, repo)

		res := registerAlice(t, uc)

		assert.NotEmpty(t, res.Token)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Equal(t, "Bearer", res.TokenType)
		assert.Equal(t, 3600, res.ExpiresIn)
		assert.Equal(t, "alice", res.User.Username)
		assert.Equal(t, "User", res.User.Role)

		claims, err := tokenService.ValidateAccessToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, []string{"User"}, claims.Roles)
	})

	t.Run("duplicate email conflicts regardless of password", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		registerAlice(t, uc)

		_, err := uc.Register(context.Background(), inbound.RegisterRequest{
			Username:        "alice2",
			Email:           "alice@example.com",
			Password:        "AnotherPerfectlyFinePassword1!",
			ConfirmPassword: "AnotherPerfectlyFinePassword1!",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "CONFLICT"))
	})

	t.Run("password mismatch is a validation error", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)

		_, err := uc.Register(context.Background(), inbound.RegisterRequest{
			Username:        "bob",
			Email:           "bob@example.com",
			Password:        "Secret1!",
			ConfirmPassword: "Secret2!",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
	})

	t.Run("extra role keeps default role primary", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)

		res, err := uc.Register(context.Background(), inbound.RegisterRequest{
			Username:        "carol",
			Email:           "carol@example.com",
			Password:        "Secret1!",
			ConfirmPassword: "Secret1!",
			Role:            "Admin",
		})
		require.NoError(t, err)
		assert.Equal(t, "User", res.User.Role)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	repo := newMockUserRepository()
	uc, _ := newTestAuthUseCase(t, repo)
	registerAlice(t, uc)

	t.Run("success", func(t *testing.T) {
		res, err := uc.Login(context.Background(), inbound.LoginRequest{
			Email:    "alice@example.com",
			Password: "Secret1!",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "alice", res.User.Username)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrongPassword := uc.Login(context.Background(), inbound.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		_, errUnknownEmail := uc.Login(context.Background(), inbound.LoginRequest{
			Email:    "nobody@example.com",
			Password: "Secret1!",
		})

		require.Error(t, errWrongPassword)
		require.Error(t, errUnknownEmail)
		assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
		assert.True(t, apperror.IsKind(errWrongPassword, "UNAUTHORIZED"))
		assert.True(t, apperror.IsKind(errUnknownEmail, "UNAUTHORIZED"))
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	t.Run("rotation is single use", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		session := registerAlice(t, uc)

		refreshed, err := uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

		// Same pair again: the stored value has rotated away.
		_, err = uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "UNAUTHORIZED"))
		assert.Equal(t, "invalid refresh token", err.Error())
	})

	t.Run("missing arguments", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)

		_, err := uc.Refresh(context.Background(), inbound.RefreshRequest{})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "BAD_REQUEST"))
	})

	t.Run("tampered access token", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		session := registerAlice(t, uc)

		_, err := uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token + "tampered",
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.Equal(t, "invalid or expired token", err.Error())
	})

	t.Run("stored refresh token expired", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		session := registerAlice(t, uc)

		// Jump past the 7-day refresh window; the access token's own expiry
		// is ignored by the refresh flow.
		uc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

		_, err := uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.Equal(t, "refresh token expired", err.Error())
	})

	t.Run("rotation landing between lookup and reload loses", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		session := registerAlice(t, uc)

		// The hook is installed after registration, so the first reload it
		// sees is the one inside this Refresh call.
		reloads := 0
		repo.beforeReload = func() {
			reloads++
			if reloads != 1 {
				return
			}
			for _, u := range repo.users {
				stolen := "rotated-by-concurrent-refresh"
				u.RefreshToken = &stolen
			}
		}

		_, err := uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "CONFLICT"))
	})

	t.Run("concurrent rotation loses with a conflict", func(t *testing.T) {
		repo := newMockUserRepository()
		uc, _ := newTestAuthUseCase(t, repo)
		session := registerAlice(t, uc)

		rotated := false
		repo.beforeRotate = func() {
			if rotated {
				return
			}
			rotated = true
			for _, u := range repo.users {
				stolen := "stolen-by-concurrent-writer"
				u.RefreshToken = &stolen
			}
		}

		_, err := uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.True(t, apperror.IsKind(err, "CONFLICT"))
	})
}

func TestAuthUseCase_Revoke(t *testing.T) {
	repo := newMockUserRepository()
	uc, _ := newTestAuthUseCase(t, repo)
	session := registerAlice(t, uc)

	t.Run("unknown username reports false without error", func(t *testing.T) {
		found, err := uc.Revoke(context.Background(), "ghost")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("revocation invalidates the stored refresh token", func(t *testing.T) {
		found, err := uc.Revoke(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, found)

		_, err = uc.Refresh(context.Background(), inbound.RefreshRequest{
			Token:        session.Token,
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		assert.Equal(t, "invalid refresh token", err.Error())
	})
}
