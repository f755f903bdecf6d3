package social

// Platform represents a supported social-media platform.
// The set is closed: adapter selection is an exhaustive switch over these
// values, so adding a platform is a compile-time change rather than a
// runtime map lookup.
type Platform string

const (
	// PlatformFacebook represents Facebook pages (Graph API)
	PlatformFacebook Platform = "facebook"
	// PlatformInstagram represents Instagram business accounts (Graph API)
	PlatformInstagram Platform = "instagram"
	// PlatformTwitter represents Twitter/X (v2 API)
	PlatformTwitter Platform = "twitter"
	// PlatformLinkedIn represents LinkedIn member profiles (UGC API)
	PlatformLinkedIn Platform = "linkedin"
)

// AllPlatforms returns every supported platform
func AllPlatforms() []Platform {
	return []Platform{
		PlatformFacebook,
		PlatformInstagram,
		PlatformTwitter,
		PlatformLinkedIn,
	}
}

// IsValid returns true if the platform is supported
func (p Platform) IsValid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformLinkedIn:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns a human-readable name for the platform
func (p Platform) DisplayName() string {
	switch p {
	case PlatformFacebook:
		return "Facebook"
	case PlatformInstagram:
		return "Instagram"
	case PlatformTwitter:
		return "Twitter/X"
	case PlatformLinkedIn:
		return "LinkedIn"
	default:
		return string(p)
	}
}

// RequiresImage returns true for platforms that cannot publish text-only posts
func (p Platform) RequiresImage() bool {
	return p == PlatformInstagram
}
