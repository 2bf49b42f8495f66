package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/invenra/invenra/domain/entity"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the identity store. Refresh-token state is part of the
// user row, so rotation and revocation are expressed here as conditional
// updates instead of a separate token table.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// FindByUsernameAndRefreshToken matches both the username and the exact
	// stored refresh-token value. A miss covers unknown users, wrong tokens
	// and already-rotated tokens alike.
	FindByUsernameAndRefreshToken(ctx context.Context, username, refreshToken string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// RotateRefreshToken stores the new refresh token only if the row still
	// holds previous (nil means no token was stored). Returns false when a
	// concurrent writer got there first.
	RotateRefreshToken(ctx context.Context, userID string, previous *string, next string, issuedAt, expiresAt time.Time) (bool, error)
	// ClearRefreshToken removes the stored refresh token and its timestamps.
	// Returns false when the username does not exist.
	ClearRefreshToken(ctx context.Context, username string) (bool, error)
}
