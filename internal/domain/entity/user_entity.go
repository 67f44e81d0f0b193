package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in PasswordHash
//
// Mobile is reserved for the future credential-recovery flow; nothing reads it
// yet beyond request validation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Mobile       string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}
