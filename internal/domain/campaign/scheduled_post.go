package campaign

import (
	"time"

	"github.com/promoflow/backend/internal/domain/shared"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
)

// PostStatus represents the lifecycle status of a scheduled post.
// Transitions are one-way: scheduled -> posted or scheduled -> failed.
type PostStatus string

const (
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPosted    PostStatus = "posted"
	PostStatusFailed    PostStatus = "failed"
)

// IsValid returns true if the status is a known post status
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusScheduled, PostStatusPosted, PostStatusFailed:
		return true
	default:
		return false
	}
}

// IsFinal returns true once the post has been resolved either way
func (s PostStatus) IsFinal() bool {
	return s == PostStatusPosted || s == PostStatusFailed
}

// GeneratedContent carries the provenance of machine-generated post copy.
// Stored as a JSON column alongside the post.
type GeneratedContent struct {
	Keywords    []string  `json:"keywords,omitempty"`
	Hashtags    []string  `json:"hashtags,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ScheduledPost is a single post planned for a specific platform at a
// specific time. It belongs to exactly one campaign and targets exactly
// one platform.
type ScheduledPost struct {
	shared.OwnedAggregateRoot
	CampaignID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID    *uuid.UUID        `gorm:"type:uuid;index"`
	Platform     social.Platform   `gorm:"type:varchar(20);not null"`
	Content      string            `gorm:"type:text;not null"`
	ImageURL     string            `gorm:"type:text"`
	Link         string            `gorm:"type:text"`
	Generated    *GeneratedContent `gorm:"type:jsonb;serializer:json"`
	ScheduledFor time.Time         `gorm:"not null;index:idx_scheduled_posts_due"`
	Status       PostStatus        `gorm:"type:varchar(20);not null;default:'scheduled';index:idx_scheduled_posts_due"`
	PostedAt     *time.Time        `gorm:""`
	ExternalID   string            `gorm:"type:varchar(255)"`
	ErrorMessage string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ScheduledPost) TableName() string {
	return "scheduled_posts"
}

// NewScheduledPost creates a post in the scheduled state
func NewScheduledPost(userID, campaignID uuid.UUID, platform social.Platform, content string, scheduledFor time.Time) (*ScheduledPost, error) {
	if !platform.IsValid() {
		return nil, social.ErrPlatformNotSupported
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_POST", "Post content is required")
	}

	return &ScheduledPost{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CampaignID:         campaignID,
		Platform:           platform,
		Content:            content,
		ScheduledFor:       scheduledFor,
		Status:             PostStatusScheduled,
	}, nil
}

// SetProduct associates the post with the product it promotes
func (p *ScheduledPost) SetProduct(productID uuid.UUID) {
	p.ProductID = &productID
}

// SetGenerated records how the post content was produced
func (p *ScheduledPost) SetGenerated(keywords, hashtags []string) {
	p.Generated = &GeneratedContent{
		Keywords:    keywords,
		Hashtags:    hashtags,
		GeneratedAt: time.Now(),
	}
}

// IsDue returns true if the post is still scheduled and its time has come
func (p *ScheduledPost) IsDue(now time.Time) bool {
	return p.Status == PostStatusScheduled && !p.ScheduledFor.After(now)
}

// MarkPosted transitions the post to its successful final state
func (p *ScheduledPost) MarkPosted(externalID string) error {
	if p.Status != PostStatusScheduled {
		return shared.ErrInvalidState
	}
	now := time.Now()
	p.Status = PostStatusPosted
	p.PostedAt = &now
	p.ExternalID = externalID
	p.ErrorMessage = ""
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// MarkFailed transitions the post to its failed final state
func (p *ScheduledPost) MarkFailed(message string) error {
	if p.Status != PostStatusScheduled {
		return shared.ErrInvalidState
	}
	p.Status = PostStatusFailed
	p.ErrorMessage = message
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// PublishContent assembles the outbound content for the platform adapter
func (p *ScheduledPost) PublishContent() social.PostContent {
	content := social.PostContent{
		Text:     p.Content,
		ImageURL: p.ImageURL,
		Link:     p.Link,
	}
	if p.Generated != nil {
		content.Hashtags = p.Generated.Hashtags
	}
	return content
}
