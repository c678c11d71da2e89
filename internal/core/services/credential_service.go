package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
)

// credentialService reads and writes the provider credential columns of a user.
type credentialService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	linkedIn portsproviders.LinkedInClient
}

// NewCredentialService creates the credential store. linkedIn may be nil, which disables token refresh.
func NewCredentialService(userRepo portsrepo.UserRepositoryFacade, linkedIn portsproviders.LinkedInClient, opts ...Option) portssvc.CredentialSvc {
	return &credentialService{
		BaseService: newBaseService(opts...),
		userRepo:    userRepo,
		linkedIn:    linkedIn,
	}
}

var _ portssvc.CredentialSvc = (*credentialService)(nil)

func validateProvider(provider domain.Provider) error {
	if !provider.IsSocial() {
		return apperrors.NewValidationError("unsupported provider", string(provider))
	}
	return nil
}

func (s *credentialService) GetCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	if err := validateProvider(provider); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotConnected
		}
		s.LogError(ctx, err, "Failed to load user for credential", slog.String("user_id", userID))
		return nil, err
	}

	cred := user.Credential(provider)
	if cred == nil {
		return nil, apperrors.ErrNotConnected
	}
	if cred.IsExpired(s.Now()) {
		return cred, apperrors.ErrCredentialExpired
	}
	return cred, nil
}

func (s *credentialService) SetCredential(ctx context.Context, userID string, cred domain.Credential) error {
	if err := validateProvider(cred.Provider); err != nil {
		return err
	}
	if err := s.userRepo.UpdateCredential(ctx, userID, cred, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store credential",
			slog.String("user_id", userID), slog.String("provider", string(cred.Provider)))
		return err
	}
	return nil
}

func (s *credentialService) ClearCredential(ctx context.Context, userID string, provider domain.Provider) error {
	if err := validateProvider(provider); err != nil {
		return err
	}
	if err := s.userRepo.ClearCredential(ctx, userID, provider, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to clear credential",
			slog.String("user_id", userID), slog.String("provider", string(provider)))
		return err
	}
	s.LogInfo(ctx, "Provider disconnected", slog.String("user_id", userID), slog.String("provider", string(provider)))
	return nil
}

func (s *credentialService) ResolveCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	cred, err := s.GetCredential(ctx, userID, provider)
	if !errors.Is(err, apperrors.ErrCredentialExpired) {
		return cred, err
	}
	if provider != domain.ProviderLinkedIn || s.linkedIn == nil || !cred.CanRefresh() {
		return nil, err
	}

	bundle, refreshErr := s.linkedIn.RefreshToken(ctx, *cred.RefreshToken)
	if refreshErr != nil {
		s.LogWarn(ctx, "LinkedIn token refresh failed",
			slog.String("user_id", userID), slog.String("error", refreshErr.Error()))
		return nil, apperrors.ErrCredentialExpired
	}

	refreshed := domain.Credential{
		Provider:       provider,
		AccessToken:    bundle.AccessToken,
		RefreshToken:   cred.RefreshToken,
		ExpiresAt:      bundle.ExpiresAt(s.Now()),
		ProviderUserID: cred.ProviderUserID,
	}
	if bundle.RefreshToken != "" {
		rt := bundle.RefreshToken
		refreshed.RefreshToken = &rt
	}
	if err := s.SetCredential(ctx, userID, refreshed); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed credential: %w", err)
	}
	s.LogInfo(ctx, "LinkedIn token refreshed", slog.String("user_id", userID))
	return &refreshed, nil
}

func (s *credentialService) Status(ctx context.Context, userID string, provider domain.Provider) (*domain.CredentialStatus, error) {
	status := &domain.CredentialStatus{Provider: provider}
	cred, err := s.GetCredential(ctx, userID, provider)
	switch {
	case errors.Is(err, apperrors.ErrNotConnected):
		return status, nil
	case errors.Is(err, apperrors.ErrCredentialExpired):
		status.Expired = true
	case err != nil:
		return nil, err
	}
	status.Connected = true
	status.ExpiresAt = cred.ExpiresAt
	status.ProviderUserID = cred.ProviderUserID
	return status, nil
}
