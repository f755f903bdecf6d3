package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostDraft is the composed copy for one scheduled post
type PostDraft struct {
	Text     string
	Keywords []string
	Hashtags []string
}

// PostComposer produces post copy for a product on a platform. The content
// generation service implements this; a template fallback is used when no
// generator is configured.
type PostComposer interface {
	Compose(ctx context.Context, product *catalog.Product, platform social.Platform) (PostDraft, error)
}

// CampaignService handles campaign lifecycle operations
type CampaignService struct {
	scope     TransactionScope
	campaigns campaign.CampaignRepository
	posts     campaign.ScheduledPostRepository
	products  catalog.ProductRepository
	composer  PostComposer
	logger    *zap.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(
	scope TransactionScope,
	campaigns campaign.CampaignRepository,
	posts campaign.ScheduledPostRepository,
	products catalog.ProductRepository,
	composer PostComposer,
	logger *zap.Logger,
) *CampaignService {
	if composer == nil {
		composer = TemplateComposer{}
	}
	return &CampaignService{
		scope:     scope,
		campaigns: campaigns,
		posts:     posts,
		products:  products,
		composer:  composer,
		logger:    logger,
	}
}

// Create validates the request, builds the campaign and its full post
// schedule (one post per platform per product per day at PostTime), and
// persists everything in a single transaction.
func (s *CampaignService) Create(ctx context.Context, userID uuid.UUID, req CreateCampaignRequest) (*CampaignResponse, error) {
	products, err := s.products.FindByIDs(ctx, userID, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(req.ProductIDs) {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more products not found")
	}

	c, err := campaign.NewCampaign(userID, req.Name, req.Platforms, req.StartDate, req.EndDate, req.PostTime)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		c.SetDescription(req.Description)
	}

	posts, err := s.buildSchedule(ctx, c, products)
	if err != nil {
		return nil, err
	}
	c.TotalPosts = len(posts)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.CampaignRepo().Save(ctx, c); err != nil {
			return err
		}
		return repos.PostRepo().SaveAll(ctx, posts)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting campaign schedule: %w", err)
	}

	s.logger.Info("campaign created",
		zap.String("campaign_id", c.ID.String()),
		zap.Int("total_posts", c.TotalPosts))
	return ToCampaignResponse(c), nil
}

// buildSchedule expands the campaign window into concrete scheduled posts
func (s *CampaignService) buildSchedule(ctx context.Context, c *campaign.Campaign, products []*catalog.Product) ([]*campaign.ScheduledPost, error) {
	postTime, err := time.Parse("15:04", c.PostTime)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CAMPAIGN", "Post time must be in HH:MM 24-hour format")
	}

	var posts []*campaign.ScheduledPost
	for day := 0; day < c.Days(); day++ {
		date := c.StartDate.AddDate(0, 0, day)
		scheduledFor := time.Date(date.Year(), date.Month(), date.Day(),
			postTime.Hour(), postTime.Minute(), 0, 0, date.Location())

		for _, platform := range c.Platforms {
			for _, product := range products {
				draft, err := s.composer.Compose(ctx, product, platform)
				if err != nil {
					return nil, fmt.Errorf("composing post for %s: %w", platform, err)
				}

				post, err := campaign.NewScheduledPost(c.UserID, c.ID, platform, draft.Text, scheduledFor)
				if err != nil {
					return nil, err
				}
				post.SetProduct(product.ID)
				post.ImageURL = product.ImageURL
				post.Link = product.LinkURL
				post.SetGenerated(draft.Keywords, draft.Hashtags)
				posts = append(posts, post)
			}
		}
	}
	return posts, nil
}

// Get loads one campaign owned by the user
func (s *CampaignService) Get(ctx context.Context, userID, id uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaigns.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToCampaignResponse(c), nil
}

// List returns the user's campaigns
func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[*CampaignResponse], error) {
	page, err := s.campaigns.FindAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*CampaignResponse, len(page.Items))
	for i, c := range page.Items {
		items[i] = ToCampaignResponse(c)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Pause suspends an active campaign
func (s *CampaignService) Pause(ctx context.Context, userID, id uuid.UUID) (*CampaignResponse, error) {
	return s.transition(ctx, userID, id, (*campaign.Campaign).Pause)
}

// Resume reactivates a paused campaign
func (s *CampaignService) Resume(ctx context.Context, userID, id uuid.UUID) (*CampaignResponse, error) {
	return s.transition(ctx, userID, id, (*campaign.Campaign).Resume)
}

func (s *CampaignService) transition(ctx context.Context, userID, id uuid.UUID, fn func(*campaign.Campaign) error) (*CampaignResponse, error) {
	c, err := s.campaigns.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.campaigns.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCampaignResponse(c), nil
}

// Delete removes a campaign and its posts
func (s *CampaignService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.campaigns.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.campaigns.Delete(ctx, userID, id)
}

// ListPosts returns a campaign's scheduled posts
func (s *CampaignService) ListPosts(ctx context.Context, userID, campaignID uuid.UUID, filter shared.Filter) (*shared.Paginated[*ScheduledPostResponse], error) {
	if _, err := s.campaigns.FindByID(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	page, err := s.posts.FindByCampaign(ctx, userID, campaignID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*ScheduledPostResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = ToScheduledPostResponse(p)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// DeletePost removes a single post that has not resolved yet
func (s *CampaignService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, userID, postID)
	if err != nil {
		return err
	}
	if post.Status.IsFinal() {
		return shared.ErrInvalidState
	}
	return s.posts.Delete(ctx, userID, postID)
}

// TemplateComposer builds post copy from the product fields alone. It is the
// fallback when no content generator is wired in.
type TemplateComposer struct{}

// Compose renders a deterministic promotional blurb for the product
func (TemplateComposer) Compose(_ context.Context, product *catalog.Product, _ social.Platform) (PostDraft, error) {
	text := "Check out " + product.Name + "!"
	if product.Description != "" {
		text += " " + product.Description
	}

	var hashtags []string
	for _, word := range strings.Fields(product.Name) {
		tag := strings.ToLower(strings.Trim(word, ".,!?"))
		if tag != "" {
			hashtags = append(hashtags, "#"+tag)
		}
	}
	return PostDraft{Text: text, Hashtags: hashtags}, nil
}

var _ PostComposer = TemplateComposer{}
