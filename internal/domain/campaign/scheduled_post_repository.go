package campaign

import (
	"context"
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ScheduledPostRepository defines the persistence contract for scheduled posts
type ScheduledPostRepository interface {
	// FindByID loads a post owned by the given user.
	// Returns shared.ErrNotFound when no such post exists.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*ScheduledPost, error)

	// FindByCampaign lists the posts belonging to a campaign
	FindByCampaign(ctx context.Context, userID, campaignID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ScheduledPost], error)

	// FindDue returns up to limit posts for the user that are still in the
	// scheduled state with scheduled_for <= now, oldest first.
	FindDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*ScheduledPost, error)

	// UsersWithDue returns the distinct owners of posts currently due,
	// used by the periodic dispatcher to fan out per-user batches.
	UsersWithDue(ctx context.Context, now time.Time) ([]uuid.UUID, error)

	// Save persists a new or updated post
	Save(ctx context.Context, p *ScheduledPost) error

	// SaveAll persists a batch of posts in a single operation
	SaveAll(ctx context.Context, posts []*ScheduledPost) error

	// Delete removes a post that has not been published yet
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
