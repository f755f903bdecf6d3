package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promoflow/backend/internal/domain/social"
)

const instagramAPIBaseURL = "https://graph.instagram.com/v18.0"

// InstagramPublisher posts to an Instagram business account via the Graph
// API's two-step media container flow: create the container, then publish it.
type InstagramPublisher struct {
	baseURL    string
	httpClient *http.Client
}

// NewInstagramPublisher creates a publisher targeting the production Graph API
func NewInstagramPublisher() *InstagramPublisher {
	return &InstagramPublisher{
		baseURL:    instagramAPIBaseURL,
		httpClient: newPublishClient(),
	}
}

// Platform returns the platform this publisher handles
func (p *InstagramPublisher) Platform() social.Platform {
	return social.PlatformInstagram
}

// Publish creates and publishes a media container for the content.
// Instagram cannot publish text-only posts, so content without an image URL
// fails before any API call.
func (p *InstagramPublisher) Publish(ctx context.Context, accessToken, accountID string, content social.PostContent) social.PublishResult {
	if content.ImageURL == "" {
		return social.Failure("Image URL required for Instagram posts")
	}

	containerPayload := map[string]any{
		"image_url":    content.ImageURL,
		"caption":      content.Message(),
		"access_token": accessToken,
	}
	status, body, err := postJSON(ctx, p.httpClient, fmt.Sprintf("%s/%s/media", p.baseURL, accountID), nil, containerPayload)
	if err != nil {
		return social.Failure(err.Error())
	}
	if status < 200 || status >= 300 {
		return social.Failure(graphErrorMessage(body, "Failed to create Instagram media"))
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &container); err != nil || container.ID == "" {
		return social.Failure("Failed to create Instagram media")
	}

	publishPayload := map[string]any{
		"creation_id":  container.ID,
		"access_token": accessToken,
	}
	status, body, err = postJSON(ctx, p.httpClient, fmt.Sprintf("%s/%s/media_publish", p.baseURL, accountID), nil, publishPayload)
	if err != nil {
		return social.Failure(err.Error())
	}
	if status < 200 || status >= 300 {
		return social.Failure(graphErrorMessage(body, "Failed to publish Instagram post"))
	}

	var published struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &published); err != nil {
		return social.Failure("Failed to publish Instagram post")
	}
	return social.Published(published.ID)
}

var _ social.Publisher = (*InstagramPublisher)(nil)
