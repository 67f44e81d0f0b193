package repository

import (
	"context"
	"errors"

	"github.com/minbase/account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email uniqueness claim fails.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the interface for user persistence.
// Create claims the email before writing the record, so a concurrent signup
// with the same email fails with ErrEmailTaken instead of winning the race.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
