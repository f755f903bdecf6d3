package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promoflow/backend/internal/domain/social"
)

const facebookAPIBaseURL = "https://graph.facebook.com/v18.0"

// FacebookPublisher posts to a Facebook page feed via the Graph API
type FacebookPublisher struct {
	baseURL    string
	httpClient *http.Client
}

// NewFacebookPublisher creates a publisher targeting the production Graph API
func NewFacebookPublisher() *FacebookPublisher {
	return &FacebookPublisher{
		baseURL:    facebookAPIBaseURL,
		httpClient: newPublishClient(),
	}
}

// Platform returns the platform this publisher handles
func (p *FacebookPublisher) Platform() social.Platform {
	return social.PlatformFacebook
}

// Publish posts the content to the page's feed
func (p *FacebookPublisher) Publish(ctx context.Context, accessToken, pageID string, content social.PostContent) social.PublishResult {
	payload := map[string]any{
		"message":      content.Message(),
		"access_token": accessToken,
	}
	if content.Link != "" {
		payload["link"] = content.Link
	}

	status, body, err := postJSON(ctx, p.httpClient, fmt.Sprintf("%s/%s/feed", p.baseURL, pageID), nil, payload)
	if err != nil {
		return social.Failure(err.Error())
	}
	if status < 200 || status >= 300 {
		return social.Failure(graphErrorMessage(body, "Failed to post to Facebook"))
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return social.Failure("Failed to post to Facebook")
	}
	return social.Published(data.ID)
}

var _ social.Publisher = (*FacebookPublisher)(nil)
