package entity

import (
	"time"
)

// Base carries the shared bookkeeping fields of soft-deletable records.
// Deleting marks IsDeleted instead of removing the row.
type Base struct {
	ID        string    `json:"id"`
	IsActive  bool      `json:"is_active"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) InitNew(id string) {
	now := time.Now().UTC()
	b.ID = id
	b.IsActive = true
	b.IsDeleted = false
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
