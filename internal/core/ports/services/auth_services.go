package services

import (
	"context"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues the raw tokens of an application session.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthSvc manages application sessions and password recovery.
type AuthSvc interface {
	// Register creates a local user and opens a session for it.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Session, error)

	// Login verifies credentials and opens a session.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// IssueSession opens a session for an already authenticated user.
	IssueSession(ctx context.Context, user *domain.User) (*domain.Session, error)

	// Refresh rotates a refresh token: the presented one is deleted and a new pair issued.
	Refresh(ctx context.Context, rawRefreshToken string) (*domain.Session, error)

	// Logout deletes the presented refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, rawRefreshToken string) error

	// ForgotPassword mails a reset link when the email is known and is silent otherwise.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password and revokes every session of the user.
	ResetPassword(ctx context.Context, rawResetToken, newPassword string) error
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// Mailer sends transactional email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetLink string) error
}
