package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
)

const defaultFeedLimit = 10

// feedService reads posts and pages back from the providers.
type feedService struct {
	BaseService
	credentials portssvc.CredentialSvc
	facebook    portsproviders.FacebookClient
	linkedIn    portsproviders.LinkedInClient
}

func NewFeedService(credentials portssvc.CredentialSvc, facebook portsproviders.FacebookClient, linkedIn portsproviders.LinkedInClient, opts ...Option) portssvc.FeedSvc {
	return &feedService{
		BaseService: newBaseService(opts...),
		credentials: credentials,
		facebook:    facebook,
		linkedIn:    linkedIn,
	}
}

var _ portssvc.FeedSvc = (*feedService)(nil)

func feedLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (s *feedService) ListFacebookPages(ctx context.Context, userID string) ([]domain.FacebookPage, error) {
	if s.facebook == nil {
		return nil, apperrors.NewServiceUnavailableError("Facebook is not configured")
	}
	cred, err := s.credentials.ResolveCredential(ctx, userID, domain.ProviderFacebook)
	if err != nil {
		return nil, err
	}
	pages, err := s.facebook.ListPages(ctx, cred.AccessToken)
	if err != nil {
		s.LogWarn(ctx, "Failed to list facebook pages", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return pages, nil
}

func (s *feedService) GetFacebookPosts(ctx context.Context, userID string, pageID *string, limit int) ([]domain.PostSummary, error) {
	pages, err := s.ListFacebookPages(ctx, userID)
	if err != nil {
		return nil, err
	}
	page, err := selectPage(pages, pageID)
	if err != nil {
		return nil, err
	}
	posts, err := s.facebook.GetPagePosts(ctx, page.ID, page.PageAccessToken, feedLimit(limit))
	if err != nil {
		s.LogWarn(ctx, "Failed to read facebook posts",
			slog.String("user_id", userID), slog.String("page_id", page.ID), slog.String("error", err.Error()))
		return nil, err
	}
	return posts, nil
}

func (s *feedService) GetLinkedInPosts(ctx context.Context, userID string, limit int) ([]domain.PostSummary, error) {
	if s.linkedIn == nil {
		return nil, apperrors.NewServiceUnavailableError("LinkedIn is not configured")
	}
	cred, err := s.credentials.ResolveCredential(ctx, userID, domain.ProviderLinkedIn)
	if err != nil {
		return nil, err
	}
	posts, err := s.linkedIn.GetPosts(ctx, cred.ProviderUserID, cred.AccessToken, feedLimit(limit))
	if err != nil {
		s.LogWarn(ctx, "Failed to read linkedin posts", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return posts, nil
}
