package domain

import "strings"

// Platform identifies a social network a post can be published to.
type Platform string

const (
	PlatformFacebook Platform = "FACEBOOK"
	PlatformLinkedIn Platform = "LINKEDIN"
)

// SupportedPlatforms lists every platform the orchestrator can target, in publish order.
var SupportedPlatforms = []Platform{PlatformFacebook, PlatformLinkedIn}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformLinkedIn:
		return true
	default:
		return false
	}
}

// Provider returns the provider backing this platform.
func (p Platform) Provider() Provider {
	switch p {
	case PlatformFacebook:
		return ProviderFacebook
	case PlatformLinkedIn:
		return ProviderLinkedIn
	default:
		return ""
	}
}

// ParsePlatform accepts the enum value case-insensitively.
func ParsePlatform(raw string) (Platform, bool) {
	p := Platform(strings.ToUpper(strings.TrimSpace(raw)))
	return p, p.Valid()
}

// Provider is the lowercase provider key used in routes and credential columns.
type Provider string

const (
	ProviderFacebook Provider = "facebook"
	ProviderLinkedIn Provider = "linkedin"
	ProviderGoogle   Provider = "google"
	ProviderLocal    Provider = "local"
)

// Platform returns the publish platform for a social provider.
func (p Provider) Platform() Platform {
	switch p {
	case ProviderFacebook:
		return PlatformFacebook
	case ProviderLinkedIn:
		return PlatformLinkedIn
	default:
		return ""
	}
}

// IsSocial reports whether the provider is one whose tokens are stored for publishing.
func (p Provider) IsSocial() bool {
	return p == ProviderFacebook || p == ProviderLinkedIn
}
