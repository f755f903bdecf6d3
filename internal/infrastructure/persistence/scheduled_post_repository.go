package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var scheduledPostOrderColumns = map[string]bool{
	"scheduled_for": true,
	"status":        true,
	"platform":      true,
	"created_at":    true,
}

// GormScheduledPostRepository implements campaign.ScheduledPostRepository using GORM
type GormScheduledPostRepository struct {
	db *gorm.DB
}

// NewGormScheduledPostRepository creates a new GormScheduledPostRepository
func NewGormScheduledPostRepository(db *gorm.DB) *GormScheduledPostRepository {
	return &GormScheduledPostRepository{db: db}
}

// FindByID finds a post by ID scoped to its owner
func (r *GormScheduledPostRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*campaign.ScheduledPost, error) {
	var post campaign.ScheduledPost
	err := r.db.WithContext(ctx).
		First(&post, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// FindByCampaign lists the posts belonging to a campaign with pagination
func (r *GormScheduledPostRepository) FindByCampaign(ctx context.Context, userID, campaignID uuid.UUID, filter shared.Filter) (*shared.Paginated[*campaign.ScheduledPost], error) {
	base := r.db.WithContext(ctx).
		Model(&campaign.ScheduledPost{}).
		Where("user_id = ? AND campaign_id = ?", userID, campaignID)

	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}
	if platform, ok := filter.Filters["platform"]; ok {
		base = base.Where("platform = ?", platform)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyOrdering(base, filter, scheduledPostOrderColumns, "scheduled_for ASC")
	query = applyPagination(query, filter)

	var posts []*campaign.ScheduledPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return shared.NewPaginated(posts, total, filter.Page, filter.PageSize), nil
}

// FindDue selects the user's posts that are ready to publish, oldest first.
// Only posts still in the scheduled state qualify; posts marked posted or
// failed by a previous batch never come back.
func (r *GormScheduledPostRepository) FindDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*campaign.ScheduledPost, error) {
	var posts []*campaign.ScheduledPost
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND scheduled_for <= ?", userID, campaign.PostStatusScheduled, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UsersWithDue returns the distinct owners of posts currently due
func (r *GormScheduledPostRepository) UsersWithDue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&campaign.ScheduledPost{}).
		Where("status = ? AND scheduled_for <= ?", campaign.PostStatusScheduled, now).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// Save creates or updates a post
func (r *GormScheduledPostRepository) Save(ctx context.Context, p *campaign.ScheduledPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// SaveAll persists a batch of posts in chunked inserts
func (r *GormScheduledPostRepository) SaveAll(ctx context.Context, posts []*campaign.ScheduledPost) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(posts, 100).Error
}

// Delete removes a post scoped to its owner
func (r *GormScheduledPostRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&campaign.ScheduledPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormScheduledPostRepository implements ScheduledPostRepository
var _ campaign.ScheduledPostRepository = (*GormScheduledPostRepository)(nil)
