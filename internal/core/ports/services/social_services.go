package services

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// CredentialSvc is the per-provider token store on the user record.
type CredentialSvc interface {
	// GetCredential returns apperrors.ErrNotConnected when nothing is stored and
	// apperrors.ErrCredentialExpired, together with the credential, when it is past expiry.
	GetCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error)

	// SetCredential stores a credential as given, without validating the token.
	SetCredential(ctx context.Context, userID string, cred domain.Credential) error

	// ClearCredential disconnects a provider.
	ClearCredential(ctx context.Context, userID string, provider domain.Provider) error

	// ResolveCredential is GetCredential plus a single refresh attempt for expired
	// credentials that carry a refresh token.
	ResolveCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error)

	// Status summarises the connection for the dashboard.
	Status(ctx context.Context, userID string, provider domain.Provider) (*domain.CredentialStatus, error)
}

// OAuthSvc runs the provider connect flow.
type OAuthSvc interface {
	// BeginAuth issues a state value and returns the provider authorization URL.
	// userID may be empty when the caller has no session yet.
	BeginAuth(ctx context.Context, provider domain.Provider, userID string) (string, error)

	// CompleteAuth validates the callback, exchanges the code and stores the credential.
	// sessionUserID is the user of the callback request, if any.
	CompleteAuth(ctx context.Context, provider domain.Provider, params domain.CallbackParams, sessionUserID string) (*domain.ConnectResult, error)
}

// PublishSvc fans a post out to the selected platforms.
type PublishSvc interface {
	// CreatePost publishes or schedules content. Per-platform failures are reported
	// in the result, not as an error.
	CreatePost(ctx context.Context, cmd domain.CreatePostCommand) (*domain.PublishResult, error)

	// ListPosts returns stored posts newest first.
	ListPosts(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error)
}

// FeedSvc reads content back from the providers.
type FeedSvc interface {
	ListFacebookPages(ctx context.Context, userID string) ([]domain.FacebookPage, error)
	GetFacebookPosts(ctx context.Context, userID string, pageID *string, limit int) ([]domain.PostSummary, error)
	GetLinkedInPosts(ctx context.Context, userID string, limit int) ([]domain.PostSummary, error)
}
