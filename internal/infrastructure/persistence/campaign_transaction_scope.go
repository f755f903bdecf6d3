package persistence

import (
	"context"

	appcampaign "github.com/promoflow/backend/internal/application/campaign"
	"github.com/promoflow/backend/internal/domain/campaign"
	"gorm.io/gorm"
)

// GormTransactionScope implements the campaign TransactionScope using GORM
// transactions. Campaign creation uses it to write the campaign row and its
// full post schedule atomically.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcampaign.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// CampaignRepo returns the campaign repository scoped to the transaction
func (r *gormTransactionalRepositories) CampaignRepo() campaign.CampaignRepository {
	return NewGormCampaignRepository(r.tx)
}

// PostRepo returns the scheduled post repository scoped to the transaction
func (r *gormTransactionalRepositories) PostRepo() campaign.ScheduledPostRepository {
	return NewGormScheduledPostRepository(r.tx)
}

// Ensure the GORM scope satisfies the application contracts
var _ appcampaign.TransactionScope = (*GormTransactionScope)(nil)
var _ appcampaign.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
