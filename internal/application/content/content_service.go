package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	appcampaign "github.com/promoflow/backend/internal/application/campaign"
	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/catalog"
	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextGenerator produces text from a prompt. The infrastructure layer
// provides the model-backed implementation, wrapped in rate limiting and
// retry; this service does not care which model sits behind it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContentService generates post copy for products and rewrites scheduled
// posts with fresh generated content.
type ContentService struct {
	posts     campaign.ScheduledPostRepository
	products  catalog.ProductRepository
	generator TextGenerator
	logger    *zap.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	posts campaign.ScheduledPostRepository,
	products catalog.ProductRepository,
	generator TextGenerator,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		posts:     posts,
		products:  products,
		generator: generator,
		logger:    logger,
	}
}

// GenerateForPost regenerates the content of one scheduled post from its
// product. Only posts still in the scheduled state can be rewritten.
func (s *ContentService) GenerateForPost(ctx context.Context, userID, postID uuid.UUID) (*appcampaign.ScheduledPostResponse, error) {
	post, err := s.posts.FindByID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status.IsFinal() {
		return nil, shared.ErrInvalidState
	}
	if post.ProductID == nil {
		return nil, shared.NewDomainError("NO_PRODUCT", "Post has no product to generate content from")
	}

	product, err := s.products.FindByID(ctx, userID, *post.ProductID)
	if err != nil {
		return nil, err
	}

	draft, err := s.Compose(ctx, product, post.Platform)
	if err != nil {
		return nil, err
	}

	post.Content = draft.Text
	post.SetGenerated(draft.Keywords, draft.Hashtags)
	post.UpdatedAt = time.Now()
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post content regenerated",
		zap.String("post_id", post.ID.String()),
		zap.String("platform", string(post.Platform)))
	return appcampaign.ToScheduledPostResponse(post), nil
}

// Compose produces a post draft for a product on a platform. It satisfies
// the campaign layer's PostComposer so campaign creation generates real
// copy when a generator is configured.
func (s *ContentService) Compose(ctx context.Context, product *catalog.Product, platform social.Platform) (appcampaign.PostDraft, error) {
	text, err := s.generator.Generate(ctx, contentPrompt(product, platform))
	if err != nil {
		return appcampaign.PostDraft{}, fmt.Errorf("generating post content: %w", err)
	}
	text = strings.TrimSpace(text)

	keywords, hashtags := s.generateTags(ctx, product)
	return appcampaign.PostDraft{
		Text:     text,
		Keywords: keywords,
		Hashtags: hashtags,
	}, nil
}

// generateTags asks the model for keywords and hashtags. Tag generation is
// best-effort: a failure falls back to tags derived from the product name.
func (s *ContentService) generateTags(ctx context.Context, product *catalog.Product) ([]string, []string) {
	raw, err := s.generator.Generate(ctx, tagsPrompt(product))
	if err != nil {
		s.logger.Warn("tag generation failed, using fallback",
			zap.String("product", product.Name),
			zap.Error(err))
		return fallbackTags(product)
	}

	keywords, hashtags, ok := parseTags(raw)
	if !ok {
		s.logger.Warn("tag response was not valid JSON, using fallback",
			zap.String("product", product.Name))
		return fallbackTags(product)
	}
	return keywords, hashtags
}

func contentPrompt(product *catalog.Product, platform social.Platform) string {
	var b strings.Builder
	b.WriteString("Write a short, engaging social media post promoting the following product.\n\n")
	b.WriteString(product.PromptSummary())
	b.WriteString("\n\nPlatform: " + platform.DisplayName())
	switch platform {
	case social.PlatformTwitter:
		b.WriteString("\nKeep it under 240 characters.")
	case social.PlatformLinkedIn:
		b.WriteString("\nUse a professional tone.")
	case social.PlatformInstagram:
		b.WriteString("\nWrite it as an image caption.")
	}
	b.WriteString("\nDo not include hashtags; they are added separately. Reply with the post text only.")
	return b.String()
}

func tagsPrompt(product *catalog.Product) string {
	return "For the following product, reply with a JSON object of the form " +
		`{"keywords": ["..."], "hashtags": ["#..."]} and nothing else. ` +
		"Give 3 to 5 of each.\n\n" + product.PromptSummary()
}

// parseTags decodes the model's tag response. Models sometimes wrap JSON in
// markdown fences or prose, so the first balanced object in the text is
// extracted before decoding.
func parseTags(raw string) (keywords, hashtags []string, ok bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, nil, false
	}

	var parsed struct {
		Keywords []string `json:"keywords"`
		Hashtags []string `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, nil, false
	}
	if len(parsed.Keywords) == 0 && len(parsed.Hashtags) == 0 {
		return nil, nil, false
	}

	for i, tag := range parsed.Hashtags {
		if !strings.HasPrefix(tag, "#") {
			parsed.Hashtags[i] = "#" + tag
		}
	}
	return parsed.Keywords, parsed.Hashtags, true
}

// fallbackTags derives tags from the product name when generation fails
func fallbackTags(product *catalog.Product) ([]string, []string) {
	var keywords, hashtags []string
	for _, word := range strings.Fields(product.Name) {
		word = strings.ToLower(strings.Trim(word, ".,!?"))
		if word == "" {
			continue
		}
		keywords = append(keywords, word)
		hashtags = append(hashtags, "#"+word)
	}
	return keywords, hashtags
}

var _ appcampaign.PostComposer = (*ContentService)(nil)
