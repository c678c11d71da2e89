package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/utils"
)

const defaultOAuthStateTTL = 10 * time.Minute

// oauthService runs the connect flow for the social providers.
type oauthService struct {
	BaseService
	states      portsrepo.OAuthStateStore
	credentials portssvc.CredentialSvc
	facebook    portsproviders.FacebookClient
	linkedIn    portsproviders.LinkedInClient
	stateTTL    time.Duration
}

// NewOAuthService creates the connect flow service. A nil client leaves that provider unavailable.
func NewOAuthService(
	states portsrepo.OAuthStateStore,
	credentials portssvc.CredentialSvc,
	facebook portsproviders.FacebookClient,
	linkedIn portsproviders.LinkedInClient,
	stateTTL time.Duration,
	opts ...Option,
) portssvc.OAuthSvc {
	if stateTTL <= 0 {
		stateTTL = defaultOAuthStateTTL
	}
	return &oauthService{
		BaseService: newBaseService(opts...),
		states:      states,
		credentials: credentials,
		facebook:    facebook,
		linkedIn:    linkedIn,
		stateTTL:    stateTTL,
	}
}

var _ portssvc.OAuthSvc = (*oauthService)(nil)

func (s *oauthService) connector(provider domain.Provider) (portsproviders.OAuthConnector, error) {
	switch provider {
	case domain.ProviderFacebook:
		if s.facebook != nil {
			return s.facebook, nil
		}
	case domain.ProviderLinkedIn:
		if s.linkedIn != nil {
			return s.linkedIn, nil
		}
	default:
		return nil, apperrors.NewValidationError("unsupported provider", string(provider))
	}
	return nil, apperrors.NewServiceUnavailableError(fmt.Sprintf("%s is not configured", provider))
}

func (s *oauthService) BeginAuth(ctx context.Context, provider domain.Provider, userID string) (string, error) {
	conn, err := s.connector(provider)
	if err != nil {
		return "", err
	}

	value, err := utils.GenerateSecureRandomString(utils.OAuthStateBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := domain.OAuthState{
		State:       value,
		Provider:    provider,
		UserID:      userID,
		RedirectURI: conn.RedirectURL(),
		CreatedAt:   s.Now(),
	}
	if err := s.states.Save(ctx, state, s.stateTTL); err != nil {
		s.LogError(ctx, err, "Failed to store oauth state", slog.String("provider", string(provider)))
		return "", err
	}

	s.LogDebug(ctx, "OAuth flow started", slog.String("provider", string(provider)), slog.String("user_id", userID))
	return conn.AuthCodeURL(value), nil
}

// CompleteAuth validates everything it can before the code is exchanged, so a forged
// or replayed callback never reaches the provider.
func (s *oauthService) CompleteAuth(ctx context.Context, provider domain.Provider, params domain.CallbackParams, sessionUserID string) (*domain.ConnectResult, error) {
	conn, err := s.connector(provider)
	if err != nil {
		return nil, err
	}

	if params.Error != "" {
		msg := params.ErrorDescription
		if msg == "" {
			msg = params.Error
		}
		if params.State != "" {
			if _, err := s.states.Consume(ctx, params.State); err != nil {
				s.LogWarn(ctx, "Failed to consume oauth state after provider error", slog.String("provider", string(provider)), slog.String("error", err.Error()))
			}
		}
		return nil, &apperrors.UpstreamError{Provider: string(provider), StatusCode: http.StatusBadRequest, Message: msg}
	}
	if params.State == "" {
		return nil, apperrors.ErrInvalidState
	}

	stored, err := s.states.Consume(ctx, params.State)
	if err != nil {
		s.LogError(ctx, err, "Failed to consume oauth state", slog.String("provider", string(provider)))
		return nil, err
	}
	if stored == nil || stored.Provider != provider || stored.RedirectURI != conn.RedirectURL() {
		s.LogWarn(ctx, "OAuth callback with unknown or mismatched state", slog.String("provider", string(provider)))
		return nil, apperrors.ErrInvalidState
	}

	userID := stored.UserID
	if userID != "" && sessionUserID != "" && userID != sessionUserID {
		s.LogWarn(ctx, "OAuth state issued to another user", slog.String("provider", string(provider)))
		return nil, apperrors.ErrInvalidState
	}
	if userID == "" {
		userID = sessionUserID
	}
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Log in before connecting a platform")
	}
	if params.Code == "" {
		return nil, apperrors.NewValidationError("missing authorization code", "code")
	}

	bundle, err := conn.Exchange(ctx, params.Code)
	if err != nil {
		s.LogError(ctx, err, "OAuth code exchange failed", slog.String("provider", string(provider)))
		return nil, err
	}

	identity, bundle, err := s.identify(ctx, provider, bundle)
	if err != nil {
		return nil, err
	}

	result := &domain.ConnectResult{
		Provider:       provider,
		UserID:         userID,
		ProviderUserID: identity.ID,
		ExpiresAt:      bundle.ExpiresAt(s.Now()),
	}
	if previous, prevErr := s.credentials.GetCredential(ctx, userID, provider); previous != nil &&
		(prevErr == nil || errors.Is(prevErr, apperrors.ErrCredentialExpired)) {
		result.Reconnected = previous.ProviderUserID == identity.ID
	}

	cred := domain.Credential{
		Provider:       provider,
		AccessToken:    bundle.AccessToken,
		ExpiresAt:      result.ExpiresAt,
		ProviderUserID: identity.ID,
	}
	if bundle.RefreshToken != "" {
		rt := bundle.RefreshToken
		cred.RefreshToken = &rt
	}
	if err := s.credentials.SetCredential(ctx, userID, cred); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Provider connected",
		slog.String("provider", string(provider)),
		slog.String("user_id", userID),
		slog.Bool("reconnected", result.Reconnected))
	return result, nil
}

// identify resolves the provider account behind the token. For Facebook the short-lived
// token is upgraded first; when the upgrade fails the short token is kept.
func (s *oauthService) identify(ctx context.Context, provider domain.Provider, bundle domain.TokenBundle) (*domain.ProviderIdentity, domain.TokenBundle, error) {
	switch provider {
	case domain.ProviderFacebook:
		if long, err := s.facebook.ExchangeLongLived(ctx, bundle.AccessToken); err != nil {
			s.LogWarn(ctx, "Facebook long-lived token exchange failed, keeping short-lived token",
				slog.String("error", err.Error()))
		} else {
			bundle = long
		}
		identity, err := s.facebook.Me(ctx, bundle.AccessToken)
		if err != nil {
			s.LogError(ctx, err, "Failed to identify facebook user")
			return nil, bundle, err
		}
		return identity, bundle, nil
	default:
		identity, err := s.linkedIn.GetProfile(ctx, bundle.AccessToken)
		if err != nil {
			s.LogError(ctx, err, "Failed to identify linkedin user")
			return nil, bundle, err
		}
		return identity, bundle, nil
	}
}
