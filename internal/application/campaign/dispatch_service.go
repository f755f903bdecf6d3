package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBatchLimit caps how many due posts one batch may process.
const DefaultBatchLimit = 50

// msgAccountNotConnected is the user-facing failure message recorded on a
// post whose owner has no connected account for the target platform.
const msgAccountNotConnected = "Social account not connected"

// DispatchService publishes due scheduled posts to their platforms.
//
// A batch is best-effort with per-post isolation: one post failing, or even
// one adapter panicking, never prevents the remaining posts in the batch
// from being attempted. Post status and campaign counters are updated as
// each post resolves, so a batch that dies midway leaves already-processed
// posts correctly recorded.
type DispatchService struct {
	posts      campaign.ScheduledPostRepository
	campaigns  campaign.CampaignRepository
	products   catalog.ProductRepository
	accounts   social.SocialAccountRepository
	publishers social.PublisherRegistry
	logger     *zap.Logger
	batchLimit int
	clock      func() time.Time
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(
	posts campaign.ScheduledPostRepository,
	campaigns campaign.CampaignRepository,
	products catalog.ProductRepository,
	accounts social.SocialAccountRepository,
	publishers social.PublisherRegistry,
	logger *zap.Logger,
	batchLimit int,
) *DispatchService {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &DispatchService{
		posts:      posts,
		campaigns:  campaigns,
		products:   products,
		accounts:   accounts,
		publishers: publishers,
		logger:     logger,
		batchLimit: batchLimit,
		clock:      time.Now,
	}
}

// RunBatch selects the user's due posts and dispatches them one by one.
// It returns an error only when the due-post selection itself fails;
// individual publish failures are reported in the summary.
func (s *DispatchService) RunBatch(ctx context.Context, userID uuid.UUID) (*DispatchSummary, error) {
	due, err := s.posts.FindDue(ctx, userID, s.clock(), s.batchLimit)
	if err != nil {
		return nil, fmt.Errorf("selecting due posts: %w", err)
	}

	summary := &DispatchSummary{Results: make([]PostDispatchResult, 0, len(due))}
	for _, post := range due {
		if ctx.Err() != nil {
			s.logger.Warn("dispatch batch stopped before completion",
				zap.String("user_id", userID.String()),
				zap.Int("remaining", len(due)-len(summary.Results)),
				zap.Error(ctx.Err()))
			break
		}

		result := s.dispatchOne(ctx, post)
		summary.Results = append(summary.Results, result)
		if result.Success {
			summary.Posted++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("dispatch batch finished",
		zap.String("user_id", userID.String()),
		zap.Int("posted", summary.Posted),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// RunAllDue dispatches batches for every user that currently has due posts.
// Used by the periodic trigger. Errors for one user do not stop the others.
func (s *DispatchService) RunAllDue(ctx context.Context) error {
	userIDs, err := s.posts.UsersWithDue(ctx, s.clock())
	if err != nil {
		return fmt.Errorf("selecting users with due posts: %w", err)
	}

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.RunBatch(ctx, userID); err != nil {
			s.logger.Error("dispatch batch failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// dispatchOne resolves the account, publishes, and records the outcome for a
// single post. It never returns an error and never lets a panic escape.
func (s *DispatchService) dispatchOne(ctx context.Context, post *campaign.ScheduledPost) (result PostDispatchResult) {
	result = PostDispatchResult{PostID: post.ID, Platform: post.Platform}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while dispatching post",
				zap.String("post_id", post.ID.String()),
				zap.String("platform", string(post.Platform)),
				zap.Any("panic", r))
			msg := fmt.Sprintf("internal error: %v", r)
			s.recordFailure(ctx, post, msg)
			result.Success = false
			result.Error = msg
		}
	}()

	account, err := s.accounts.FindByUserAndPlatform(ctx, post.UserID, post.Platform)
	if err != nil {
		msg := msgAccountNotConnected
		if !errors.Is(err, shared.ErrNotFound) {
			msg = "account lookup failed: " + err.Error()
		}
		s.recordFailure(ctx, post, msg)
		result.Error = msg
		return result
	}

	publisher, err := s.publishers.For(post.Platform)
	if err != nil {
		s.recordFailure(ctx, post, err.Error())
		result.Error = err.Error()
		return result
	}

	content := post.PublishContent()
	s.refreshProductAssets(ctx, post, &content)

	published := publisher.Publish(ctx, account.AccessToken, account.AccountID, content)
	if !published.Success {
		s.recordFailure(ctx, post, published.Error)
		result.Error = published.Error
		return result
	}

	if err := post.MarkPosted(published.PostID); err != nil {
		s.recordFailure(ctx, post, err.Error())
		result.Error = err.Error()
		return result
	}
	if err := s.posts.Save(ctx, post); err != nil {
		s.logger.Error("failed to persist posted status",
			zap.String("post_id", post.ID.String()),
			zap.Error(err))
		result.Error = "failed to record posted status: " + err.Error()
		return result
	}
	if err := s.campaigns.IncrementPostedCount(ctx, post.CampaignID); err != nil {
		s.logger.Warn("failed to increment campaign posted count",
			zap.String("campaign_id", post.CampaignID.String()),
			zap.Error(err))
	}

	result.Success = true
	return result
}

// refreshProductAssets re-reads the product so image and link edits made
// after scheduling still reach the platform. A product that has since been
// deleted leaves the snapshot taken at schedule time in place.
func (s *DispatchService) refreshProductAssets(ctx context.Context, post *campaign.ScheduledPost, content *social.PostContent) {
	if post.ProductID == nil {
		return
	}
	product, err := s.products.FindByID(ctx, post.UserID, *post.ProductID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("product lookup failed, publishing scheduled snapshot",
				zap.String("post_id", post.ID.String()),
				zap.Error(err))
		}
		return
	}
	content.ImageURL = product.ImageURL
	content.Link = product.LinkURL
}

// recordFailure marks the post failed and bumps the campaign's failed
// counter. Persistence errors here are logged, not propagated; the batch
// must keep going.
func (s *DispatchService) recordFailure(ctx context.Context, post *campaign.ScheduledPost, message string) {
	if err := post.MarkFailed(message); err != nil {
		s.logger.Warn("post not in a failable state",
			zap.String("post_id", post.ID.String()),
			zap.Error(err))
		return
	}
	if err := s.posts.Save(ctx, post); err != nil {
		s.logger.Error("failed to persist failed status",
			zap.String("post_id", post.ID.String()),
			zap.Error(err))
		return
	}
	if err := s.campaigns.IncrementFailedCount(ctx, post.CampaignID); err != nil {
		s.logger.Warn("failed to increment campaign failed count",
			zap.String("campaign_id", post.CampaignID.String()),
			zap.Error(err))
	}
}
