package users

import (
	"time"

	"grocery-platform/internal/auth"
)

// User is a managed account. PasswordHash never leaves this package
// except through the auth directory port.
type User struct {
	UID          string    `json:"id" db:"uid"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         auth.Role `json:"role" db:"role"`

	// Active is the soft-delete flag. The transition Active -> inactive
	// is one-way; deactivated accounts are never reactivated by this
	// service (the bootstrap upsert is the single exception, for the
	// seeded admin).
	Active bool `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
