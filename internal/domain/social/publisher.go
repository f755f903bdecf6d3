package social

import (
	"context"
	"errors"
	"strings"
)

// ---------------------------------------------------------------------------
// Publisher Errors
// ---------------------------------------------------------------------------

var (
	// ErrPlatformNotSupported is returned when no adapter exists for a platform
	ErrPlatformNotSupported = errors.New("social: platform not supported")
	// ErrAccountNotConnected is returned when a user has no account for a platform
	ErrAccountNotConnected = errors.New("social: account not connected")
	// ErrImageRequired is returned when a platform needs media and none was given
	ErrImageRequired = errors.New("social: image URL required for this platform")
)

// PostContent is the platform-neutral payload handed to a publisher adapter
type PostContent struct {
	Text     string
	ImageURL string
	Link     string
	Hashtags []string
}

// Message returns the post body with hashtags appended, the shape every
// platform shares: text, a blank line, then space-joined hashtags.
func (c PostContent) Message() string {
	if len(c.Hashtags) == 0 {
		return c.Text
	}
	return c.Text + "\n\n" + strings.Join(c.Hashtags, " ")
}

// PublishResult is the outcome of one publish attempt. Adapters convert every
// failure mode, HTTP errors included, into a non-success result; no error may
// escape the adapter boundary, which is what keeps per-post dispatch isolation
// intact.
type PublishResult struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failure builds a failed result with the given message
func Failure(message string) PublishResult {
	return PublishResult{Success: false, Error: message}
}

// Published builds a successful result carrying the external post identifier
func Published(postID string) PublishResult {
	return PublishResult{Success: true, PostID: postID}
}

// Publisher publishes one piece of content to one external platform.
// Implementations are pure translations to the platform's publish API and
// apply no retry policy of their own.
type Publisher interface {
	// Platform returns the platform this publisher handles
	Platform() Platform

	// Publish posts the content on behalf of accountID using accessToken.
	// The returned result is always meaningful; a nil-safe, never-panicking
	// contract the dispatch loop depends on.
	Publish(ctx context.Context, accessToken, accountID string, content PostContent) PublishResult
}

// PublisherRegistry resolves the publisher for a platform
type PublisherRegistry interface {
	// For returns the publisher for the given platform, or
	// ErrPlatformNotSupported if none is registered.
	For(platform Platform) (Publisher, error)
}
