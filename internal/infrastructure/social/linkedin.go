package social

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/promoflow/backend/internal/domain/social"
)

const linkedInAPIBaseURL = "https://api.linkedin.com"

// LinkedInPublisher posts UGC shares on behalf of a member profile
type LinkedInPublisher struct {
	baseURL    string
	httpClient *http.Client
}

// NewLinkedInPublisher creates a publisher targeting the production UGC API
func NewLinkedInPublisher() *LinkedInPublisher {
	return &LinkedInPublisher{
		baseURL:    linkedInAPIBaseURL,
		httpClient: newPublishClient(),
	}
}

// Platform returns the platform this publisher handles
func (p *LinkedInPublisher) Platform() social.Platform {
	return social.PlatformLinkedIn
}

// Publish posts the content as a public UGC share
func (p *LinkedInPublisher) Publish(ctx context.Context, accessToken, accountID string, content social.PostContent) social.PublishResult {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}

	shareMediaCategory := "NONE"
	if content.Link != "" {
		shareMediaCategory = "ARTICLE"
	}
	payload := map[string]any{
		"author":         "urn:li:person:" + accountID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary": map[string]any{
					"text": content.Message(),
				},
				"shareMediaCategory": shareMediaCategory,
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	status, body, err := postJSON(ctx, p.httpClient, p.baseURL+"/v2/ugcPosts", headers, payload)
	if err != nil {
		return social.Failure(err.Error())
	}
	if status < 200 || status >= 300 {
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
			return social.Failure(envelope.Message)
		}
		return social.Failure("Failed to post to LinkedIn")
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return social.Failure("Failed to post to LinkedIn")
	}
	return social.Published(data.ID)
}

var _ social.Publisher = (*LinkedInPublisher)(nil)
