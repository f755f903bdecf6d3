package campaign

import (
	"time"

	"github.com/promoflow/backend/internal/domain/campaign"
	"github.com/promoflow/backend/internal/domain/social"
	"github.com/google/uuid"
)

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Name        string            `json:"name" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Platforms   []social.Platform `json:"platforms" binding:"required,min=1"`
	ProductIDs  []uuid.UUID       `json:"product_ids" binding:"required,min=1"`
	StartDate   time.Time         `json:"start_date" binding:"required"`
	EndDate     time.Time         `json:"end_date" binding:"required"`
	PostTime    string            `json:"post_time" binding:"required"`
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Platforms   []social.Platform `json:"platforms"`
	Status      string            `json:"status"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	PostTime    string            `json:"post_time"`
	TotalPosts  int               `json:"total_posts"`
	PostedCount int               `json:"posted_count"`
	FailedCount int               `json:"failed_count"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ScheduledPostResponse represents a scheduled post in API responses
type ScheduledPostResponse struct {
	ID           uuid.UUID       `json:"id"`
	CampaignID   uuid.UUID       `json:"campaign_id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	Platform     social.Platform `json:"platform"`
	Content      string          `json:"content"`
	ImageURL     string          `json:"image_url,omitempty"`
	ScheduledFor time.Time       `json:"scheduled_for"`
	Status       string          `json:"status"`
	PostedAt     *time.Time      `json:"posted_at,omitempty"`
	ExternalID   string          `json:"external_id,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// PostDispatchResult is the outcome of dispatching one post
type PostDispatchResult struct {
	PostID   uuid.UUID       `json:"post_id"`
	Platform social.Platform `json:"platform"`
	Success  bool            `json:"success"`
	Error    string          `json:"error,omitempty"`
}

// DispatchSummary aggregates the outcomes of one dispatch batch
type DispatchSummary struct {
	Posted  int                  `json:"posted"`
	Failed  int                  `json:"failed"`
	Results []PostDispatchResult `json:"results"`
}

// ToCampaignResponse converts a domain campaign to its API shape
func ToCampaignResponse(c *campaign.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Platforms:   c.Platforms,
		Status:      string(c.Status),
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		PostTime:    c.PostTime,
		TotalPosts:  c.TotalPosts,
		PostedCount: c.PostedCount,
		FailedCount: c.FailedCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToScheduledPostResponse converts a domain post to its API shape
func ToScheduledPostResponse(p *campaign.ScheduledPost) *ScheduledPostResponse {
	return &ScheduledPostResponse{
		ID:           p.ID,
		CampaignID:   p.CampaignID,
		ProductID:    p.ProductID,
		Platform:     p.Platform,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		ScheduledFor: p.ScheduledFor,
		Status:       string(p.Status),
		PostedAt:     p.PostedAt,
		ExternalID:   p.ExternalID,
		ErrorMessage: p.ErrorMessage,
	}
}
