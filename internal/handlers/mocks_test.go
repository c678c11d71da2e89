package handlers_test

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) session(args mock.Arguments) (*domain.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Session, error) {
	return m.session(m.Called(ctx, req))
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return m.session(m.Called(ctx, email, password))
}
func (m *MockAuthService) IssueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	return m.session(m.Called(ctx, user))
}
func (m *MockAuthService) Refresh(ctx context.Context, rawRefreshToken string) (*domain.Session, error) {
	return m.session(m.Called(ctx, rawRefreshToken))
}
func (m *MockAuthService) Logout(ctx context.Context, rawRefreshToken string) error {
	return m.Called(ctx, rawRefreshToken).Error(0)
}
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockAuthService) ResetPassword(ctx context.Context, rawResetToken, newPassword string) error {
	return m.Called(ctx, rawResetToken, newPassword).Error(0)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

type MockPublishService struct {
	mock.Mock
}

func (m *MockPublishService) CreatePost(ctx context.Context, cmd domain.CreatePostCommand) (*domain.PublishResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublishResult), args.Error(1)
}
func (m *MockPublishService) ListPosts(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error) {
	args := m.Called(ctx, userID, platform, limit, nextToken)
	var posts []domain.Post
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.Post)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return posts, next, args.Error(2)
}

var _ portssvc.PublishSvc = (*MockPublishService)(nil)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListFacebookPages(ctx context.Context, userID string) ([]domain.FacebookPage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FacebookPage), args.Error(1)
}
func (m *MockFeedService) GetFacebookPosts(ctx context.Context, userID string, pageID *string, limit int) ([]domain.PostSummary, error) {
	args := m.Called(ctx, userID, pageID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostSummary), args.Error(1)
}
func (m *MockFeedService) GetLinkedInPosts(ctx context.Context, userID string, limit int) ([]domain.PostSummary, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostSummary), args.Error(1)
}

var _ portssvc.FeedSvc = (*MockFeedService)(nil)

type MockOAuthService struct {
	mock.Mock
}

func (m *MockOAuthService) BeginAuth(ctx context.Context, provider domain.Provider, userID string) (string, error) {
	args := m.Called(ctx, provider, userID)
	return args.String(0), args.Error(1)
}
func (m *MockOAuthService) CompleteAuth(ctx context.Context, provider domain.Provider, params domain.CallbackParams, sessionUserID string) (*domain.ConnectResult, error) {
	args := m.Called(ctx, provider, params, sessionUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectResult), args.Error(1)
}

var _ portssvc.OAuthSvc = (*MockOAuthService)(nil)

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) GetCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialService) SetCredential(ctx context.Context, userID string, cred domain.Credential) error {
	return m.Called(ctx, userID, cred).Error(0)
}
func (m *MockCredentialService) ClearCredential(ctx context.Context, userID string, provider domain.Provider) error {
	return m.Called(ctx, userID, provider).Error(0)
}
func (m *MockCredentialService) ResolveCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialService) Status(ctx context.Context, userID string, provider domain.Provider) (*domain.CredentialStatus, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CredentialStatus), args.Error(1)
}

var _ portssvc.CredentialSvc = (*MockCredentialService)(nil)

type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) GetOrganization(ctx context.Context, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) UpsertOrganization(ctx context.Context, userID string, req dto.UpsertOrganizationRequest) (*domain.Organization, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

var _ portssvc.OrganizationSvc = (*MockOrganizationService)(nil)

type MockCaptionService struct {
	mock.Mock
}

func (m *MockCaptionService) GenerateCaption(ctx context.Context, userID string, req dto.CaptionRequest) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

var _ portssvc.CaptionSvc = (*MockCaptionService)(nil)
