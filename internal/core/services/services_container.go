package services

import (
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
)

// Dependencies are the outbound clients built by main. Any of them may be nil
// when the matching integration is not configured.
type Dependencies struct {
	Facebook portsproviders.FacebookClient
	LinkedIn portsproviders.LinkedInClient
	Media    portsproviders.MediaFetcher
	Captions portsproviders.CaptionGenerator
	Mailer   portssvc.Mailer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, opts...)
	container.TokenService = NewTokenService(cfg, opts...)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	container.Auth = NewAuthService(AuthServiceConfig{
		Users:           container.User,
		UserRepo:        repos.UserRepo,
		RefreshRepo:     repos.RefreshTokenRepo,
		Tokens:          container.TokenService,
		Mailer:          deps.Mailer,
		FrontendBaseURL: cfg.FrontendBaseURL,
		ResetTTL:        cfg.PasswordResetTTL,
	}, opts...)

	// Credentials come first: the connect flow, the publisher and the feeds all resolve tokens through it.
	container.Credential = NewCredentialService(repos.UserRepo, deps.LinkedIn, opts...)
	container.OAuth = NewOAuthService(repos.OAuthStateStore, container.Credential, deps.Facebook, deps.LinkedIn, cfg.OAuthStateTTL, opts...)
	container.Publish = NewPublishService(repos.PostRepo, container.Credential, deps.Facebook, deps.LinkedIn, deps.Media, opts...)
	container.Feed = NewFeedService(container.Credential, deps.Facebook, deps.LinkedIn, opts...)

	container.Organization = NewOrganizationService(repos.OrganizationRepo, opts...)
	container.Caption = NewCaptionService(deps.Captions, repos.OrganizationRepo, opts...)

	return container
}
