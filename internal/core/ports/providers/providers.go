// Package providers declares the outbound clients the core depends on: the social
// provider APIs, the media downloader and the caption model.
package providers

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// OAuthConnector is the part of a provider client used by the connect flow.
type OAuthConnector interface {
	// AuthCodeURL builds the provider authorization URL for state.
	AuthCodeURL(state string) string

	// RedirectURL is the callback URL sent in both the authorization and token requests.
	RedirectURL() string

	// Exchange trades an authorization code for a token bundle.
	Exchange(ctx context.Context, code string) (domain.TokenBundle, error)
}

// FacebookClient wraps the Graph API.
type FacebookClient interface {
	OAuthConnector

	// ExchangeLongLived upgrades a short-lived user token.
	ExchangeLongLived(ctx context.Context, shortLivedToken string) (domain.TokenBundle, error)

	// Me returns the id of the token's user.
	Me(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error)

	// ListPages returns the pages the user manages with their page tokens.
	// An empty list yields apperrors.ErrNoPages.
	ListPages(ctx context.Context, userAccessToken string) ([]domain.FacebookPage, error)

	// GetPagePosts returns recent posts of a page. Missing counts are zero.
	GetPagePosts(ctx context.Context, pageID, pageAccessToken string, limit int) ([]domain.PostSummary, error)

	// PublishPagePost creates one feed post and returns its id. An image takes
	// precedence over link and is uploaded first as an unpublished photo.
	PublishPagePost(ctx context.Context, pageID, pageAccessToken, message string, link *string, image *domain.MediaUpload) (string, error)
}

// LinkedInClient wraps the LinkedIn v2 REST API.
type LinkedInClient interface {
	OAuthConnector

	// RefreshToken trades a refresh token for a new bundle.
	RefreshToken(ctx context.Context, refreshToken string) (domain.TokenBundle, error)

	// GetProfile resolves the acting identity; the returned ID is a URN.
	GetProfile(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error)

	// GetPosts lists UGC posts authored by authorURN. Metrics are always zero.
	GetPosts(ctx context.Context, authorURN, accessToken string, limit int) ([]domain.PostSummary, error)

	// UploadImage registers and uploads an image, returning the digital media asset URN.
	UploadImage(ctx context.Context, authorURN, accessToken string, image domain.MediaUpload) (string, error)

	// PublishPost creates a UGC post. link and imageAsset are mutually exclusive.
	PublishPost(ctx context.Context, authorURN, accessToken, text string, link *string, imageAsset *string) (string, error)
}

// MediaFetcher downloads an image referenced by URL.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.MediaUpload, error)
}

// CaptionGenerator produces text from a prompt.
type CaptionGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
