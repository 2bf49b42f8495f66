package entity

import (
	"time"
)

const DefaultRole = "User"

// User is the account record. The rotating refresh token lives directly on
// the row: at most one active value per user, replaced on every issue.
type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Password         string     `json:"-"`
	Roles            []string   `json:"roles"`
	RefreshToken     *string    `json:"-"`
	RefreshIssuedAt  *time.Time `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewUser(id, username, email, password string, roles []string) *User {
	now := time.Now().UTC()
	if len(roles) == 0 {
		roles = []string{DefaultRole}
	}
	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  password,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PrimaryRole returns the first stored role. Roles keep insertion order, with
// the default role written first at registration.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return DefaultRole
	}
	return u.Roles[0]
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RefreshTokenExpired reports whether the stored refresh token has passed its
// server-side expiry. A user without a stored token counts as expired.
func (u *User) RefreshTokenExpired(now time.Time) bool {
	if u.RefreshToken == nil || u.RefreshExpiresAt == nil {
		return true
	}
	return !now.Before(*u.RefreshExpiresAt)
}
