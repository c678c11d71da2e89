package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- repositories ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, tokenHash, now)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	return m.Called(ctx, userID, passwordHash, updatedAt).Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, userID, tokenHash, expiresAt).Error(0)
}

func (m *MockUserRepository) UpdateCredential(ctx context.Context, userID string, cred domain.Credential, updatedAt time.Time) error {
	return m.Called(ctx, userID, cred, updatedAt).Error(0)
}

func (m *MockUserRepository) ClearCredential(ctx context.Context, userID string, provider domain.Provider, updatedAt time.Time) error {
	return m.Called(ctx, userID, provider, updatedAt).Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	var token *domain.RefreshToken
	if args.Get(0) != nil {
		token = args.Get(0).(*domain.RefreshToken)
	}
	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) SavePost(ctx context.Context, post domain.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) ListPostsByUser(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error) {
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

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByUserID(ctx context.Context, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, userID)
	var org *domain.Organization
	if args.Get(0) != nil {
		org = args.Get(0).(*domain.Organization)
	}
	return org, args.Error(1)
}

func (m *MockOrganizationRepository) UpsertOrganization(ctx context.Context, org domain.Organization) (*domain.Organization, error) {
	args := m.Called(ctx, org)
	var saved *domain.Organization
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Organization)
	}
	return saved, args.Error(1)
}

type MockOAuthStateStore struct {
	mock.Mock
}

func (m *MockOAuthStateStore) Save(ctx context.Context, state domain.OAuthState, ttl time.Duration) error {
	return m.Called(ctx, state, ttl).Error(0)
}

func (m *MockOAuthStateStore) Consume(ctx context.Context, state string) (*domain.OAuthState, error) {
	args := m.Called(ctx, state)
	var s *domain.OAuthState
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.OAuthState)
	}
	return s, args.Error(1)
}

// --- providers ---

type MockFacebookClient struct {
	mock.Mock
}

func (m *MockFacebookClient) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockFacebookClient) RedirectURL() string {
	return m.Called().String(0)
}

func (m *MockFacebookClient) Exchange(ctx context.Context, code string) (domain.TokenBundle, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.TokenBundle), args.Error(1)
}

func (m *MockFacebookClient) ExchangeLongLived(ctx context.Context, shortLivedToken string) (domain.TokenBundle, error) {
	args := m.Called(ctx, shortLivedToken)
	return args.Get(0).(domain.TokenBundle), args.Error(1)
}

func (m *MockFacebookClient) Me(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error) {
	args := m.Called(ctx, accessToken)
	var id *domain.ProviderIdentity
	if args.Get(0) != nil {
		id = args.Get(0).(*domain.ProviderIdentity)
	}
	return id, args.Error(1)
}

func (m *MockFacebookClient) ListPages(ctx context.Context, userAccessToken string) ([]domain.FacebookPage, error) {
	args := m.Called(ctx, userAccessToken)
	var pages []domain.FacebookPage
	if args.Get(0) != nil {
		pages = args.Get(0).([]domain.FacebookPage)
	}
	return pages, args.Error(1)
}

func (m *MockFacebookClient) GetPagePosts(ctx context.Context, pageID, pageAccessToken string, limit int) ([]domain.PostSummary, error) {
	args := m.Called(ctx, pageID, pageAccessToken, limit)
	var posts []domain.PostSummary
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.PostSummary)
	}
	return posts, args.Error(1)
}

func (m *MockFacebookClient) PublishPagePost(ctx context.Context, pageID, pageAccessToken, message string, link *string, image *domain.MediaUpload) (string, error) {
	args := m.Called(ctx, pageID, pageAccessToken, message, link, image)
	return args.String(0), args.Error(1)
}

type MockLinkedInClient struct {
	mock.Mock
}

func (m *MockLinkedInClient) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockLinkedInClient) RedirectURL() string {
	return m.Called().String(0)
}

func (m *MockLinkedInClient) Exchange(ctx context.Context, code string) (domain.TokenBundle, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.TokenBundle), args.Error(1)
}

func (m *MockLinkedInClient) RefreshToken(ctx context.Context, refreshToken string) (domain.TokenBundle, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(domain.TokenBundle), args.Error(1)
}

func (m *MockLinkedInClient) GetProfile(ctx context.Context, accessToken string) (*domain.ProviderIdentity, error) {
	args := m.Called(ctx, accessToken)
	var id *domain.ProviderIdentity
	if args.Get(0) != nil {
		id = args.Get(0).(*domain.ProviderIdentity)
	}
	return id, args.Error(1)
}

func (m *MockLinkedInClient) GetPosts(ctx context.Context, authorURN, accessToken string, limit int) ([]domain.PostSummary, error) {
	args := m.Called(ctx, authorURN, accessToken, limit)
	var posts []domain.PostSummary
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.PostSummary)
	}
	return posts, args.Error(1)
}

func (m *MockLinkedInClient) UploadImage(ctx context.Context, authorURN, accessToken string, image domain.MediaUpload) (string, error) {
	args := m.Called(ctx, authorURN, accessToken, image)
	return args.String(0), args.Error(1)
}

func (m *MockLinkedInClient) PublishPost(ctx context.Context, authorURN, accessToken, text string, link *string, imageAsset *string) (string, error) {
	args := m.Called(ctx, authorURN, accessToken, text, link, imageAsset)
	return args.String(0), args.Error(1)
}

type MockMediaFetcher struct {
	mock.Mock
}

func (m *MockMediaFetcher) Fetch(ctx context.Context, url string) (*domain.MediaUpload, error) {
	args := m.Called(ctx, url)
	var media *domain.MediaUpload
	if args.Get(0) != nil {
		media = args.Get(0).(*domain.MediaUpload)
	}
	return media, args.Error(1)
}

type MockCaptionGenerator struct {
	mock.Mock
}

func (m *MockCaptionGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- services ---

type MockCredentialSvc struct {
	mock.Mock
}

func (m *MockCredentialSvc) GetCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	args := m.Called(ctx, userID, provider)
	var cred *domain.Credential
	if args.Get(0) != nil {
		cred = args.Get(0).(*domain.Credential)
	}
	return cred, args.Error(1)
}

func (m *MockCredentialSvc) SetCredential(ctx context.Context, userID string, cred domain.Credential) error {
	return m.Called(ctx, userID, cred).Error(0)
}

func (m *MockCredentialSvc) ClearCredential(ctx context.Context, userID string, provider domain.Provider) error {
	return m.Called(ctx, userID, provider).Error(0)
}

func (m *MockCredentialSvc) ResolveCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	args := m.Called(ctx, userID, provider)
	var cred *domain.Credential
	if args.Get(0) != nil {
		cred = args.Get(0).(*domain.Credential)
	}
	return cred, args.Error(1)
}

func (m *MockCredentialSvc) Status(ctx context.Context, userID string, provider domain.Provider) (*domain.CredentialStatus, error) {
	args := m.Called(ctx, userID, provider)
	var status *domain.CredentialStatus
	if args.Get(0) != nil {
		status = args.Get(0).(*domain.CredentialStatus)
	}
	return status, args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockUserSvc struct {
	mock.Mock
}

func (m *MockUserSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) CreateOAuthUser(ctx context.Context, name, email, authProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	args := m.Called(ctx, name, email, authProvider, providerUserID, emailVerified)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserSvc) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, name, resetLink string) error {
	return m.Called(ctx, to, name, resetLink).Error(0)
}

// fixed clock shared by the suites
var testNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
