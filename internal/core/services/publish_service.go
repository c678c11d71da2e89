package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portsproviders "github.com/SscSPs/social_dashboard/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/social_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/utils/pagination"
	"github.com/google/uuid"
)

// Per-platform messages returned in PublishResult.Errors.
const (
	msgNotConnected      = "Platform not connected"
	msgCredentialExpired = "Platform token expired, please reconnect"
)

// platformPublisher publishes one piece of content to one platform.
type platformPublisher interface {
	publish(ctx context.Context, cred *domain.Credential, content domain.PublishContent) (string, error)
}

type facebookPublisher struct {
	client portsproviders.FacebookClient
}

func (p facebookPublisher) publish(ctx context.Context, cred *domain.Credential, content domain.PublishContent) (string, error) {
	pages, err := p.client.ListPages(ctx, cred.AccessToken)
	if err != nil {
		return "", err
	}
	page, err := selectPage(pages, content.FacebookPageID)
	if err != nil {
		return "", err
	}
	return p.client.PublishPagePost(ctx, page.ID, page.PageAccessToken, content.Text, content.Link, content.Image)
}

// selectPage picks the requested page when the user manages it, else the first page.
func selectPage(pages []domain.FacebookPage, requested *string) (*domain.FacebookPage, error) {
	if len(pages) == 0 {
		return nil, apperrors.ErrNoPages
	}
	if requested == nil || *requested == "" {
		return &pages[0], nil
	}
	for i := range pages {
		if pages[i].ID == *requested {
			return &pages[i], nil
		}
	}
	return nil, apperrors.NewValidationError("Facebook page is not managed by this account", *requested)
}

type linkedInPublisher struct {
	client portsproviders.LinkedInClient
}

func (p linkedInPublisher) publish(ctx context.Context, cred *domain.Credential, content domain.PublishContent) (string, error) {
	author := cred.ProviderUserID
	if content.Image != nil {
		asset, err := p.client.UploadImage(ctx, author, cred.AccessToken, *content.Image)
		if err != nil {
			return "", err
		}
		return p.client.PublishPost(ctx, author, cred.AccessToken, content.Text, nil, &asset)
	}
	return p.client.PublishPost(ctx, author, cred.AccessToken, content.Text, content.Link, nil)
}

func platformName(p domain.Platform) string {
	switch p {
	case domain.PlatformFacebook:
		return "Facebook"
	case domain.PlatformLinkedIn:
		return "LinkedIn"
	default:
		return string(p)
	}
}

// publishService fans content out to the selected platforms one after another.
type publishService struct {
	BaseService
	postRepo    portsrepo.PostRepositoryFacade
	credentials portssvc.CredentialSvc
	media       portsproviders.MediaFetcher
	publishers  map[domain.Platform]platformPublisher
}

// NewPublishService creates the publish orchestrator. A nil provider client leaves its platform unavailable.
func NewPublishService(
	postRepo portsrepo.PostRepositoryFacade,
	credentials portssvc.CredentialSvc,
	facebook portsproviders.FacebookClient,
	linkedIn portsproviders.LinkedInClient,
	media portsproviders.MediaFetcher,
	opts ...Option,
) portssvc.PublishSvc {
	publishers := make(map[domain.Platform]platformPublisher, 2)
	if facebook != nil {
		publishers[domain.PlatformFacebook] = facebookPublisher{client: facebook}
	}
	if linkedIn != nil {
		publishers[domain.PlatformLinkedIn] = linkedInPublisher{client: linkedIn}
	}
	return &publishService{
		BaseService: newBaseService(opts...),
		postRepo:    postRepo,
		credentials: credentials,
		media:       media,
		publishers:  publishers,
	}
}

var _ portssvc.PublishSvc = (*publishService)(nil)

// parsePlatforms rejects the whole list when any entry is unknown and drops repeats.
func parsePlatforms(raw []string) ([]domain.Platform, error) {
	if len(raw) == 0 {
		return nil, apperrors.NewValidationError("at least one platform is required", "platforms")
	}
	var (
		platforms []domain.Platform
		invalid   []string
		seen      = make(map[domain.Platform]bool, len(raw))
	)
	for _, r := range raw {
		p, ok := domain.ParsePlatform(r)
		if !ok {
			invalid = append(invalid, r)
			continue
		}
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidationError("unsupported platforms", invalid...)
	}
	return platforms, nil
}

func (s *publishService) CreatePost(ctx context.Context, cmd domain.CreatePostCommand) (*domain.PublishResult, error) {
	platforms, err := parsePlatforms(cmd.Platforms)
	if err != nil {
		return nil, err
	}
	now := s.Now()

	if cmd.ScheduledAt != nil {
		if !cmd.ScheduledAt.After(now) {
			return nil, apperrors.NewValidationError("scheduledAt must be in the future", "scheduledAt")
		}
		return s.schedule(ctx, cmd, platforms[0], now)
	}

	content := domain.PublishContent{
		Text:           cmd.Content,
		Link:           cmd.Link,
		Image:          cmd.Image,
		FacebookPageID: cmd.FacebookPageID,
	}
	var (
		mediaLoaded bool
		mediaErr    error
	)
	loadMedia := func() error {
		if mediaLoaded || content.Image != nil || cmd.MediaURL == nil || *cmd.MediaURL == "" {
			return mediaErr
		}
		mediaLoaded = true
		if s.media == nil {
			mediaErr = apperrors.NewServiceUnavailableError("Media download is not available")
			return mediaErr
		}
		content.Image, mediaErr = s.media.Fetch(ctx, *cmd.MediaURL)
		if mediaErr != nil {
			s.LogWarn(ctx, "Failed to fetch media", slog.String("error", mediaErr.Error()))
		}
		return mediaErr
	}

	result := &domain.PublishResult{Created: []domain.Post{}, Errors: []domain.PlatformError{}}
	for _, platform := range platforms {
		platformID, err := s.publishTo(ctx, cmd.UserID, platform, &content, loadMedia)
		if err != nil {
			result.Errors = append(result.Errors, domain.PlatformError{Platform: platform, Message: publishErrorMessage(platform, err)})
			continue
		}

		post := domain.Post{
			PostID:         uuid.NewString(),
			UserID:         cmd.UserID,
			Content:        cmd.Content,
			MediaURL:       cmd.MediaURL,
			Status:         domain.PostStatusPublished,
			Platform:       platform,
			PlatformPostID: &platformID,
			PublishedAt:    s.Now(),
			CreatedAt:      s.Now(),
		}
		if err := s.postRepo.SavePost(ctx, post); err != nil {
			s.LogError(ctx, err, "Published post could not be stored",
				slog.String("user_id", cmd.UserID), slog.String("platform", string(platform)), slog.String("platform_post_id", platformID))
			result.Errors = append(result.Errors, domain.PlatformError{
				Platform: platform,
				Message:  fmt.Sprintf("Published to %s but failed to save the post", platformName(platform)),
			})
			continue
		}
		result.Created = append(result.Created, post)
	}

	s.LogInfo(ctx, "Post fan-out finished",
		slog.String("user_id", cmd.UserID),
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Errors)))
	return result, nil
}

func (s *publishService) publishTo(ctx context.Context, userID string, platform domain.Platform, content *domain.PublishContent, loadMedia func() error) (string, error) {
	publisher, ok := s.publishers[platform]
	if !ok {
		return "", apperrors.NewServiceUnavailableError(fmt.Sprintf("%s is not configured", platformName(platform)))
	}
	cred, err := s.credentials.ResolveCredential(ctx, userID, platform.Provider())
	if err != nil {
		return "", err
	}
	if err := loadMedia(); err != nil {
		return "", err
	}
	id, err := publisher.publish(ctx, cred, *content)
	if err != nil {
		s.LogWarn(ctx, "Publish failed",
			slog.String("user_id", userID), slog.String("platform", string(platform)), slog.String("error", err.Error()))
		return "", err
	}
	return id, nil
}

func publishErrorMessage(platform domain.Platform, err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotConnected):
		return msgNotConnected
	case errors.Is(err, apperrors.ErrCredentialExpired):
		return msgCredentialExpired
	case errors.Is(err, apperrors.ErrNoPages):
		return "No Facebook pages available to publish to"
	default:
		return apperrors.UserMessage(err, fmt.Sprintf("Failed to publish to %s", platformName(platform)))
	}
}

// schedule records intent only: one row on the first platform, nothing is sent.
func (s *publishService) schedule(ctx context.Context, cmd domain.CreatePostCommand, platform domain.Platform, now time.Time) (*domain.PublishResult, error) {
	post := domain.Post{
		PostID:      uuid.NewString(),
		UserID:      cmd.UserID,
		Content:     cmd.Content,
		MediaURL:    cmd.MediaURL,
		Status:      domain.PostStatusScheduled,
		Platform:    platform,
		PublishedAt: cmd.ScheduledAt.UTC(),
		CreatedAt:   now,
	}
	if err := s.postRepo.SavePost(ctx, post); err != nil {
		s.LogError(ctx, err, "Failed to store scheduled post", slog.String("user_id", cmd.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Post scheduled", slog.String("user_id", cmd.UserID), slog.String("platform", string(platform)))
	return &domain.PublishResult{Created: []domain.Post{post}, Errors: []domain.PlatformError{}}, nil
}

func (s *publishService) ListPosts(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error) {
	posts, next, err := s.postRepo.ListPostsByUser(ctx, userID, platform, pagination.ClampLimit(limit), nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posts", slog.String("user_id", userID))
		return nil, nil, err
	}
	return posts, next, nil
}
