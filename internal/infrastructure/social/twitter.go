package social

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/promoflow/backend/internal/domain/social"
)

const twitterAPIBaseURL = "https://api.twitter.com"

// TwitterPublisher posts tweets via the v2 API with bearer authentication
type TwitterPublisher struct {
	baseURL    string
	httpClient *http.Client
}

// NewTwitterPublisher creates a publisher targeting the production v2 API
func NewTwitterPublisher() *TwitterPublisher {
	return &TwitterPublisher{
		baseURL:    twitterAPIBaseURL,
		httpClient: newPublishClient(),
	}
}

// Platform returns the platform this publisher handles
func (p *TwitterPublisher) Platform() social.Platform {
	return social.PlatformTwitter
}

// Publish posts the content as a tweet. Twitter ignores the account ID; the
// bearer token identifies the posting account.
func (p *TwitterPublisher) Publish(ctx context.Context, accessToken, _ string, content social.PostContent) social.PublishResult {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	payload := map[string]any{
		"text": content.Message(),
	}

	status, body, err := postJSON(ctx, p.httpClient, p.baseURL+"/2/tweets", headers, payload)
	if err != nil {
		return social.Failure(err.Error())
	}
	if status < 200 || status >= 300 {
		var envelope struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
			return social.Failure(envelope.Detail)
		}
		return social.Failure("Failed to post to Twitter")
	}

	var data struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return social.Failure("Failed to post to Twitter")
	}
	return social.Published(data.Data.ID)
}

var _ social.Publisher = (*TwitterPublisher)(nil)
