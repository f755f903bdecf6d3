package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users
type UserRepository interface {
	// FindByID loads a user by primary key.
	// Returns shared.ErrNotFound when no such user exists.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail loads a user by normalized email address
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new or updated user
	Save(ctx context.Context, u *User) error
}
