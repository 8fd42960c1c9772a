package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owning notes
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserUpdate lists the columns a profile update may change.
// PasswordHash stays untouched when nil.
type UserUpdate struct {
	Name         string
	Email        string
	PasswordHash *string
	UpdatedAt    time.Time
}
