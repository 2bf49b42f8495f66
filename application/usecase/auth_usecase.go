package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invenra/invenra/application/port/inbound"
	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
	"github.com/invenra/invenra/infrastructure/service/logger"
	"github.com/invenra/invenra/pkg/apperror"
)

const minPasswordLength = 6

// AuthUseCase drives the account session state machine: register, login,
// refresh-with-rotation, revoke. All expected failures come back as tagged
// AppErrors so the HTTP layer can map them without string matching.
type AuthUseCase struct {
	userRepository  outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService inbound.PasswordService
	logger          logger.Logger
	refreshTokenTTL time.Duration
	now             func() time.Time
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService inbound.PasswordService,
	log logger.Logger,
	refreshTokenTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepository:  userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          log,
		refreshTokenTTL: refreshTokenTTL,
		now:             time.Now,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.AuthResponse, error) {
	if err := validateRegisterRequest(req); err != nil {
		logger.LogAuthEvent(ctx, uc.logger, "register_validation_failed", "", false, map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	exists, err := uc.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check email availability", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.NewInternalServer("failed to check email availability")
	}
	if exists {
		logger.LogAuthEvent(ctx, uc.logger, "register_email_taken", "", false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.NewConflict("email is already taken")
	}

	hash, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		uc.logger.Error(ctx, "Failed to hash password", err, nil)
		return nil, apperror.NewInternalServer("failed to create user")
	}

	// Default role always comes first so it stays the primary one.
	roles := []string{entity.DefaultRole}
	if role := strings.TrimSpace(req.Role); role != "" && role != entity.DefaultRole {
		roles = append(roles, role)
	}

	user := entity.NewUser(uuid.NewString(), req.Username, req.Email, hash, roles)
	if err := uc.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			return nil, apperror.NewConflict("email is already taken")
		}
		uc.logger.Error(ctx, "Failed to create user", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.NewInternalServer("failed to create user")
	}

	logger.LogAuthEvent(ctx, uc.logger, "user_registered", user.ID, true, map[string]interface{}{
		"email": req.Email,
	})

	// A freshly created account has no refresh token stored yet.
	return uc.issueSession(ctx, user, nil)
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.NewBadRequest("email and password are required")
	}

	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			logger.LogAuthEvent(ctx, uc.logger, "login_failed_user_not_found", "", false, map[string]interface{}{
				"email": req.Email,
			})
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		uc.logger.Error(ctx, "Failed to find user", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.NewInternalServer("failed to find user")
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.Password)
	if err != nil {
		uc.logger.Error(ctx, "Password verification error", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperror.NewInternalServer("password verification failed")
	}
	if !valid {
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_invalid_password", user.ID, false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	logger.LogAuthEvent(ctx, uc.logger, "login_successful", user.ID, true, map[string]interface{}{
		"email": req.Email,
	})

	return uc.issueSession(ctx, user, user.RefreshToken)
}

func (uc *AuthUseCase) Refresh(ctx context.Context, req inbound.RefreshRequest) (*inbound.AuthResponse, error) {
	if req.Token == "" || req.RefreshToken == "" {
		return nil, apperror.NewBadRequest("token and refresh token are required")
	}

	// The access token may be expired; signature, issuer and audience must
	// still hold.
	claims, err := uc.tokenService.ValidateExpiredAccessToken(req.Token)
	if err != nil || claims.Username == "" {
		logger.LogSecurityEvent(ctx, uc.logger, "refresh_invalid_access_token", "MEDIUM", nil)
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}

	// A single lookup covers unknown users, wrong tokens and already-rotated
	// tokens, so the caller learns nothing about which one failed.
	user, err := uc.userRepository.FindByUsernameAndRefreshToken(ctx, claims.Username, req.RefreshToken)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			logger.LogSecurityEvent(ctx, uc.logger, "refresh_token_mismatch", "MEDIUM", map[string]interface{}{
				"username": claims.Username,
			})
			return nil, apperror.NewUnauthorized("invalid refresh token")
		}
		uc.logger.Error(ctx, "Failed to look up refresh token", err, nil)
		return nil, apperror.NewInternalServer("failed to refresh token")
	}

	if user.RefreshTokenExpired(uc.now().UTC()) {
		logger.LogSecurityEvent(ctx, uc.logger, "refresh_token_expired", "MEDIUM", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperror.NewUnauthorized("refresh token expired")
	}

	logger.LogAuthEvent(ctx, uc.logger, "token_refreshed", user.ID, true, nil)

	// The swap must be conditioned on the token value that was just
	// validated, so a concurrent rotation between here and the write makes
	// this request fail instead of both succeeding.
	return uc.issueSession(ctx, user, user.RefreshToken)
}

func (uc *AuthUseCase) Revoke(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, apperror.NewBadRequest("username is required")
	}

	found, err := uc.userRepository.ClearRefreshToken(ctx, username)
	if err != nil {
		uc.logger.Error(ctx, "Failed to revoke refresh token", err, map[string]interface{}{
			"username": username,
		})
		return false, apperror.NewInternalServer("failed to revoke token")
	}

	logger.LogAuthEvent(ctx, uc.logger, "token_revoked", "", found, map[string]interface{}{
		"username": username,
	})

	return found, nil
}

// issueSession is shared by register, login and refresh: it re-reads the
// account for current roles, issues a fresh access token and rotates the
// stored refresh token. The rotation is a compare-and-swap on previous, the
// token value the caller read and validated, never on the re-read value: a
// write that lands between the caller's read and ours must make the swap
// fail, so two concurrent refreshes with the same stale token cannot both
// win.
func (uc *AuthUseCase) issueSession(ctx context.Context, user *entity.User, previous *string) (*inbound.AuthResponse, error) {
	fresh, err := uc.userRepository.FindByID(ctx, user.ID)
	if err != nil {
		uc.logger.Error(ctx, "Failed to reload user for session", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperror.NewInternalServer("failed to issue session")
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(fresh)
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate access token", err, map[string]interface{}{
			"user_id": fresh.ID,
		})
		return nil, apperror.NewInternalServer("failed to generate access token")
	}

	refreshToken, err := uc.tokenService.GenerateRefreshToken()
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate refresh token", err, map[string]interface{}{
			"user_id": fresh.ID,
		})
		return nil, apperror.NewInternalServer("failed to generate refresh token")
	}

	issuedAt := uc.now().UTC()
	expiresAt := issuedAt.Add(uc.refreshTokenTTL)

	ok, err := uc.userRepository.RotateRefreshToken(ctx, fresh.ID, previous, refreshToken, issuedAt, expiresAt)
	if err != nil {
		uc.logger.Error(ctx, "Failed to store refresh token", err, map[string]interface{}{
			"user_id": fresh.ID,
		})
		return nil, apperror.NewInternalServer("failed to update user with refresh token")
	}
	if !ok {
		// Someone rotated the token between our read and write. The caller
		// must redo the whole flow, not just the write.
		logger.LogSecurityEvent(ctx, uc.logger, "refresh_rotation_conflict", "MEDIUM", map[string]interface{}{
			"user_id": fresh.ID,
		})
		return nil, apperror.NewConflict("session changed concurrently, please retry")
	}

	return &inbound.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    uc.tokenService.AccessTokenTTLSeconds(),
		TokenType:    "Bearer",
		User: inbound.AuthUserSummary{
			ID:       fresh.ID,
			Username: fresh.Username,
			Email:    fresh.Email,
			Role:     fresh.PrimaryRole(),
		},
	}, nil
}

func validateRegisterRequest(req inbound.RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperror.NewBadRequest("username, email and password are required")
	}
	if len(req.Username) < 3 {
		return apperror.NewBadRequest("username must be at least 3 characters")
	}
	if len(req.Password) < minPasswordLength {
		return apperror.NewBadRequest("password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return apperror.NewBadRequest("password and confirmation do not match")
	}
	return nil
}
