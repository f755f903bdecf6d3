package social

import (
	"github.com/promoflow/backend/internal/domain/social"
)

// Registry resolves publishers with an exhaustive switch over the closed
// platform set. Adding a platform means adding a field and a case here,
// which the compiler and tests notice immediately.
type Registry struct {
	facebook  social.Publisher
	instagram social.Publisher
	twitter   social.Publisher
	linkedin  social.Publisher
}

// NewRegistry builds a registry wired to the production platform adapters
func NewRegistry() *Registry {
	return &Registry{
		facebook:  NewFacebookPublisher(),
		instagram: NewInstagramPublisher(),
		twitter:   NewTwitterPublisher(),
		linkedin:  NewLinkedInPublisher(),
	}
}

// For returns the publisher for the given platform
func (r *Registry) For(platform social.Platform) (social.Publisher, error) {
	switch platform {
	case social.PlatformFacebook:
		return r.facebook, nil
	case social.PlatformInstagram:
		return r.instagram, nil
	case social.PlatformTwitter:
		return r.twitter, nil
	case social.PlatformLinkedIn:
		return r.linkedin, nil
	default:
		return nil, social.ErrPlatformNotSupported
	}
}

var _ social.PublisherRegistry = (*Registry)(nil)
