package social

import (
	"context"

	"github.com/google/uuid"
)

// SocialAccountRepository defines the interface for social account persistence
type SocialAccountRepository interface {
	// FindByID finds an account by its ID scoped to a user
	FindByID(ctx context.Context, userID, id uuid.UUID) (*SocialAccount, error)

	// FindByUserAndPlatform finds the connected account the dispatcher should
	// use for (userID, platform). When several non-revoked rows exist, the
	// most recently connected one wins. Returns shared.ErrNotFound when the
	// user has no usable account for the platform.
	FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform Platform) (*SocialAccount, error)

	// FindAllForUser returns every non-revoked account for the user
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]SocialAccount, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *SocialAccount) error

	// Delete removes an account scoped to its owner
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
