package persistence

import (
	"context"
	"errors"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var campaignOrderColumns = map[string]bool{
	"name":       true,
	"status":     true,
	"start_date": true,
	"created_at": true,
}

// GormCampaignRepository implements campaign.CampaignRepository using GORM
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewGormCampaignRepository creates a new GormCampaignRepository
func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// FindByID finds a campaign by ID scoped to its owner
func (r *GormCampaignRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*campaign.Campaign, error) {
	var c campaign.Campaign
	err := r.db.WithContext(ctx).
		First(&c, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll lists campaigns owned by the user with pagination
func (r *GormCampaignRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*campaign.Campaign], error) {
	base := r.db.WithContext(ctx).Model(&campaign.Campaign{}).Where("user_id = ?", userID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name ILIKE ?", pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	query := applyOrdering(base, filter, campaignOrderColumns, "created_at DESC")
	query = applyPagination(query, filter)

	var campaigns []*campaign.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return shared.NewPaginated(campaigns, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a campaign
func (r *GormCampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a campaign and all of its scheduled posts
func (r *GormCampaignRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&campaign.Campaign{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("campaign_id = ?", id).
			Delete(&campaign.ScheduledPost{}).Error
	})
}

// IncrementPostedCount bumps the posted counter with a single UPDATE so
// concurrent dispatchers never lose increments.
func (r *GormCampaignRepository) IncrementPostedCount(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "posted_count")
}

// IncrementFailedCount bumps the failed counter with a single UPDATE
func (r *GormCampaignRepository) IncrementFailedCount(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "failed_count")
}

func (r *GormCampaignRepository) incrementCounter(ctx context.Context, id uuid.UUID, column string) error {
	result := r.db.WithContext(ctx).
		Model(&campaign.Campaign{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCampaignRepository implements CampaignRepository
var _ campaign.CampaignRepository = (*GormCampaignRepository)(nil)
