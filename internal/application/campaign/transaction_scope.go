package campaign

import (
	"context"

	"github.com/promoflow/backend/internal/domain/campaign"
)

// TransactionScope provides transactional access to campaign repositories.
// Campaign creation writes the campaign row and its full post schedule
// atomically; a failure anywhere rolls the whole thing back.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to campaign repositories sharing
// one underlying transaction.
type TransactionalRepositories interface {
	// CampaignRepo returns the campaign repository scoped to the transaction
	CampaignRepo() campaign.CampaignRepository
	// PostRepo returns the scheduled post repository scoped to the transaction
	PostRepo() campaign.ScheduledPostRepository
}

// NoOpTransactionScope runs the function against fixed repositories without
// a real transaction. Used in tests.
type NoOpTransactionScope struct {
	campaignRepo campaign.CampaignRepository
	postRepo     campaign.ScheduledPostRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(campaignRepo campaign.CampaignRepository, postRepo campaign.ScheduledPostRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{campaignRepo: campaignRepo, postRepo: postRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CampaignRepo returns the campaign repository
func (s *NoOpTransactionScope) CampaignRepo() campaign.CampaignRepository {
	return s.campaignRepo
}

// PostRepo returns the scheduled post repository
func (s *NoOpTransactionScope) PostRepo() campaign.ScheduledPostRepository {
	return s.postRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
