package campaign

import (
	"context"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CampaignRepository defines the persistence contract for campaigns
type CampaignRepository interface {
	// FindByID loads a campaign owned by the given user.
	// Returns shared.ErrNotFound when no such campaign exists.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Campaign, error)

	// FindAll lists campaigns owned by the given user, newest first
	FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Campaign], error)

	// Save persists a new or updated campaign
	Save(ctx context.Context, c *Campaign) error

	// Delete removes a campaign and all of its scheduled posts
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// IncrementPostedCount atomically increments the campaign's posted
	// counter at the store level, safe under concurrent dispatchers.
	IncrementPostedCount(ctx context.Context, id uuid.UUID) error

	// IncrementFailedCount atomically increments the campaign's failed
	// counter at the store level.
	IncrementFailedCount(ctx context.Context, id uuid.UUID) error
}
