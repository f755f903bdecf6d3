package persistence

import (
	"context"
	"errors"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSocialAccountRepository implements social.SocialAccountRepository using GORM
type GormSocialAccountRepository struct {
	db *gorm.DB
}

// NewGormSocialAccountRepository creates a new GormSocialAccountRepository
func NewGormSocialAccountRepository(db *gorm.DB) *GormSocialAccountRepository {
	return &GormSocialAccountRepository{db: db}
}

// FindByID finds an account by ID scoped to its owner
func (r *GormSocialAccountRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*social.SocialAccount, error) {
	var account social.SocialAccount
	err := r.db.WithContext(ctx).
		First(&account, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByUserAndPlatform returns the account the dispatcher should publish
// through. Revoked accounts are excluded; among the remaining rows the most
// recently connected one wins.
func (r *GormSocialAccountRepository) FindByUserAndPlatform(ctx context.Context, userID uuid.UUID, platform social.Platform) (*social.SocialAccount, error) {
	var account social.SocialAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ? AND revoked_at IS NULL", userID, platform).
		Order("connected_at DESC").
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAllForUser returns every non-revoked account for the user
func (r *GormSocialAccountRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]social.SocialAccount, error) {
	var accounts []social.SocialAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Order("connected_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormSocialAccountRepository) Save(ctx context.Context, account *social.SocialAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// Delete removes an account scoped to its owner
func (r *GormSocialAccountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&social.SocialAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSocialAccountRepository implements SocialAccountRepository
var _ social.SocialAccountRepository = (*GormSocialAccountRepository)(nil)
