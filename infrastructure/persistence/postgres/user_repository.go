package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/invenra/invenra/application/port/outbound"
	"github.com/invenra/invenra/domain/entity"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, password, roles, refresh_token, refresh_issued_at, refresh_expires_at, created_at, updated_at`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) outbound.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		pq.Array(user.Roles),
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return outbound.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.queryOne(ctx, query, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.queryOne(ctx, query, email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)
	return r.queryOne(ctx, query, username)
}

func (r *userRepository) FindByUsernameAndRefreshToken(ctx context.Context, username, refreshToken string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 AND refresh_token = $2`, userColumns)
	return r.queryOne(ctx, query, username, refreshToken)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// RotateRefreshToken is the compare-and-swap behind refresh rotation: the
// write only lands if the row still holds the token value that was read.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID string, previous *string, next string, issuedAt, expiresAt time.Time) (bool, error) {
	var (
		result sql.Result
		err    error
	)

	if previous == nil {
		query := `
			UPDATE users
			SET refresh_token = $2, refresh_issued_at = $3, refresh_expires_at = $4, updated_at = $3
			WHERE id = $1 AND refresh_token IS NULL
		`
		result, err = r.db.ExecContext(ctx, query, userID, next, issuedAt, expiresAt)
	} else {
		query := `
			UPDATE users
			SET refresh_token = $2, refresh_issued_at = $3, refresh_expires_at = $4, updated_at = $3
			WHERE id = $1 AND refresh_token = $5
		`
		result, err = r.db.ExecContext(ctx, query, userID, next, issuedAt, expiresAt, *previous)
	}

	if err != nil {
		return false, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, username string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = NULL, refresh_issued_at = NULL, refresh_expires_at = NULL, updated_at = $2
		WHERE username = $1
	`

	result, err := r.db.ExecContext(ctx, query, username, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to clear refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *userRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		pq.Array(&user.Roles),
		&user.RefreshToken,
		&user.RefreshIssuedAt,
		&user.RefreshExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
