package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PublishServiceTestSuite struct {
	suite.Suite
	posts       *MockPostRepository
	credentials *MockCredentialSvc
	facebook    *MockFacebookClient
	linkedIn    *MockLinkedInClient
	media       *MockMediaFetcher
	service     portssvc.PublishSvc

	fbCred *domain.Credential
	liCred *domain.Credential
	pages  []domain.FacebookPage
}

func (suite *PublishServiceTestSuite) SetupTest() {
	suite.posts = new(MockPostRepository)
	suite.credentials = new(MockCredentialSvc)
	suite.facebook = new(MockFacebookClient)
	suite.linkedIn = new(MockLinkedInClient)
	suite.media = new(MockMediaFetcher)
	suite.service = services.NewPublishService(suite.posts, suite.credentials, suite.facebook, suite.linkedIn, suite.media,
		services.WithClock(fixedClock))

	suite.fbCred = &domain.Credential{Provider: domain.ProviderFacebook, AccessToken: "fb-user", ProviderUserID: "fb-1"}
	suite.liCred = &domain.Credential{Provider: domain.ProviderLinkedIn, AccessToken: "li", ProviderUserID: "urn:li:person:abc"}
	suite.pages = []domain.FacebookPage{
		{ID: "p1", Name: "First", PageAccessToken: "p1-token"},
		{ID: "p2", Name: "Second", PageAccessToken: "p2-token"},
	}
}

func TestPublishServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PublishServiceTestSuite))
}

func (suite *PublishServiceTestSuite) TestCreatePost_InvalidPlatformsListedTogether() {
	_, err := suite.service.CreatePost(context.Background(), domain.CreatePostCommand{
		UserID: "u1", Content: "hi", Platforms: []string{"TWITTER", "FACEBOOK", "MYSPACE"},
	})

	var valErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &valErr)
	suite.Equal([]string{"TWITTER", "MYSPACE"}, valErr.Fields)
	suite.credentials.AssertNotCalled(suite.T(), "ResolveCredential", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PublishServiceTestSuite) TestCreatePost_EmptyPlatforms() {
	_, err := suite.service.CreatePost(context.Background(), domain.CreatePostCommand{UserID: "u1", Content: "hi"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PublishServiceTestSuite) TestCreatePost_ScheduledAtNotInFuture() {
	for _, at := range []time.Time{testNow, testNow.Add(-time.Minute)} {
		_, err := suite.service.CreatePost(context.Background(), domain.CreatePostCommand{
			UserID: "u1", Content: "hi", Platforms: []string{"LINKEDIN"}, ScheduledAt: timePtr(at),
		})
		suite.ErrorIs(err, apperrors.ErrValidation, "scheduledAt %s", at)
	}
	suite.posts.AssertNotCalled(suite.T(), "SavePost", mock.Anything, mock.Anything)
}

func (suite *PublishServiceTestSuite) TestCreatePost_ScheduledUsesFirstPlatformOnly() {
	ctx := context.Background()
	at := testNow.Add(24 * time.Hour)
	suite.posts.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Status == domain.PostStatusScheduled && p.Platform == domain.PlatformLinkedIn &&
			p.PublishedAt.Equal(at) && p.PlatformPostID == nil
	})).Return(nil).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "later", Platforms: []string{"LINKEDIN", "FACEBOOK"}, ScheduledAt: &at,
	})

	suite.Require().NoError(err)
	suite.Len(result.Created, 1)
	suite.Empty(result.Errors)
	suite.posts.AssertNumberOfCalls(suite.T(), "SavePost", 1)
	suite.facebook.AssertNotCalled(suite.T(), "PublishPagePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.linkedIn.AssertNotCalled(suite.T(), "PublishPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PublishServiceTestSuite) TestCreatePost_NotConnectedEverywhereFails() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(nil, apperrors.ErrNotConnected).Once()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(nil, apperrors.ErrNotConnected).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "hello", Platforms: []string{"FACEBOOK", "LINKEDIN"},
	})

	suite.Require().NoError(err)
	suite.True(result.Failed())
	suite.Equal([]domain.PlatformError{
		{Platform: domain.PlatformFacebook, Message: "Platform not connected"},
		{Platform: domain.PlatformLinkedIn, Message: "Platform not connected"},
	}, result.Errors)
	suite.posts.AssertNotCalled(suite.T(), "SavePost", mock.Anything, mock.Anything)
}

func (suite *PublishServiceTestSuite) TestCreatePost_OnlyLinkedInConnected() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(nil, apperrors.ErrNotConnected).Once()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.linkedIn.On("PublishPost", ctx, "urn:li:person:abc", "li", "hello", (*string)(nil), (*string)(nil)).
		Return("urn:li:share:1", nil).Once()
	suite.posts.On("SavePost", ctx, mock.AnythingOfType("domain.Post")).Return(nil).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "hello", Platforms: []string{"FACEBOOK", "LINKEDIN"},
	})

	suite.Require().NoError(err)
	suite.False(result.Failed())
	suite.Require().Len(result.Created, 1)
	created := result.Created[0]
	suite.Equal(domain.PlatformLinkedIn, created.Platform)
	suite.Equal(domain.PostStatusPublished, created.Status)
	suite.Require().NotNil(created.PlatformPostID)
	suite.Equal("urn:li:share:1", *created.PlatformPostID, "stored id is the provider id")
	suite.Equal(testNow, created.PublishedAt)
	suite.Equal([]domain.PlatformError{{Platform: domain.PlatformFacebook, Message: "Platform not connected"}}, result.Errors)
}

func (suite *PublishServiceTestSuite) TestCreatePost_ExpiredCredentialMessage() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(nil, apperrors.ErrCredentialExpired).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{UserID: "u1", Content: "x", Platforms: []string{"linkedin"}})

	suite.Require().NoError(err)
	suite.Equal("Platform token expired, please reconnect", result.Errors[0].Message)
}

func (suite *PublishServiceTestSuite) TestCreatePost_FacebookUsesRequestedPage() {
	ctx := context.Background()
	link := "https://example.com/article"
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(suite.fbCred, nil).Once()
	suite.facebook.On("ListPages", ctx, "fb-user").Return(suite.pages, nil).Once()
	suite.facebook.On("PublishPagePost", ctx, "p2", "p2-token", "hello", &link, (*domain.MediaUpload)(nil)).
		Return("p2_100", nil).Once()
	suite.posts.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return *p.PlatformPostID == "p2_100"
	})).Return(nil).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "hello", Link: &link, Platforms: []string{"FACEBOOK"}, FacebookPageID: strPtr("p2"),
	})

	suite.Require().NoError(err)
	suite.Len(result.Created, 1)
	suite.facebook.AssertExpectations(suite.T())
}

func (suite *PublishServiceTestSuite) TestCreatePost_UnknownPageIsPlatformError() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(suite.fbCred, nil).Once()
	suite.facebook.On("ListPages", ctx, "fb-user").Return(suite.pages, nil).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "hello", Platforms: []string{"FACEBOOK"}, FacebookPageID: strPtr("p9"),
	})

	suite.Require().NoError(err)
	suite.True(result.Failed())
	suite.Contains(result.Errors[0].Message, "p9")
}

func (suite *PublishServiceTestSuite) TestCreatePost_UpstreamMessageSurfaced() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(suite.fbCred, nil).Once()
	suite.facebook.On("ListPages", ctx, "fb-user").Return(suite.pages, nil).Once()
	suite.facebook.On("PublishPagePost", ctx, "p1", "p1-token", "hello", (*string)(nil), (*domain.MediaUpload)(nil)).
		Return("", &apperrors.UpstreamError{Provider: "facebook", StatusCode: 403, Code: 200, Message: "(#200) Requires pages_manage_posts", Auth: true}).Once()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.linkedIn.On("PublishPost", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection reset")).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "hello", Platforms: []string{"FACEBOOK", "LINKEDIN"},
	})

	suite.Require().NoError(err)
	suite.Equal([]domain.PlatformError{
		{Platform: domain.PlatformFacebook, Message: "(#200) Requires pages_manage_posts"},
		{Platform: domain.PlatformLinkedIn, Message: "Failed to publish to LinkedIn"},
	}, result.Errors)
}

func (suite *PublishServiceTestSuite) TestCreatePost_MediaFetchedOnceForBothPlatforms() {
	ctx := context.Background()
	mediaURL := "https://cdn.example.com/cat.png"
	image := &domain.MediaUpload{Filename: "cat.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(suite.fbCred, nil).Once()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.media.On("Fetch", ctx, mediaURL).Return(image, nil).Once()
	suite.facebook.On("ListPages", ctx, "fb-user").Return(suite.pages, nil).Once()
	suite.facebook.On("PublishPagePost", ctx, "p1", "p1-token", "pic", (*string)(nil), image).Return("p1_1", nil).Once()
	suite.linkedIn.On("UploadImage", ctx, "urn:li:person:abc", "li", *image).Return("urn:li:digitalmediaAsset:9", nil).Once()
	suite.linkedIn.On("PublishPost", ctx, "urn:li:person:abc", "li", "pic", (*string)(nil), mock.MatchedBy(func(a *string) bool {
		return a != nil && *a == "urn:li:digitalmediaAsset:9"
	})).Return("urn:li:share:2", nil).Once()
	suite.posts.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.MediaURL != nil && *p.MediaURL == mediaURL
	})).Return(nil).Twice()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "pic", MediaURL: &mediaURL, Platforms: []string{"FACEBOOK", "LINKEDIN"},
	})

	suite.Require().NoError(err)
	suite.Len(result.Created, 2)
	suite.Empty(result.Errors)
	suite.media.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *PublishServiceTestSuite) TestCreatePost_MediaFetchFailureRecordedPerPlatform() {
	ctx := context.Background()
	mediaURL := "https://cdn.example.com/missing.png"
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderFacebook).Return(suite.fbCred, nil).Once()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.media.On("Fetch", ctx, mediaURL).
		Return(nil, &apperrors.UpstreamError{Provider: "media", StatusCode: 404, Message: "media download failed with status 404"}).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "pic", MediaURL: &mediaURL, Platforms: []string{"FACEBOOK", "LINKEDIN"},
	})

	suite.Require().NoError(err)
	suite.True(result.Failed())
	suite.Len(result.Errors, 2)
	suite.media.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *PublishServiceTestSuite) TestCreatePost_TwoCallsCreateDistinctRows() {
	ctx := context.Background()
	var ids, platformIDs []string
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Twice()
	suite.linkedIn.On("PublishPost", ctx, mock.Anything, mock.Anything, "same", mock.Anything, mock.Anything).
		Return("urn:li:share:1", nil).Once()
	suite.linkedIn.On("PublishPost", ctx, mock.Anything, mock.Anything, "same", mock.Anything, mock.Anything).
		Return("urn:li:share:2", nil).Once()
	suite.posts.On("SavePost", ctx, mock.AnythingOfType("domain.Post")).
		Run(func(args mock.Arguments) {
			post := args.Get(1).(domain.Post)
			ids = append(ids, post.PostID)
			if post.PlatformPostID != nil {
				platformIDs = append(platformIDs, *post.PlatformPostID)
			}
		}).
		Return(nil).Twice()

	cmd := domain.CreatePostCommand{UserID: "u1", Content: "same", Platforms: []string{"LINKEDIN"}}
	_, err := suite.service.CreatePost(ctx, cmd)
	suite.Require().NoError(err)
	_, err = suite.service.CreatePost(ctx, cmd)
	suite.Require().NoError(err)

	suite.Require().Len(ids, 2)
	suite.NotEqual(ids[0], ids[1])
	suite.Require().Len(platformIDs, 2)
	suite.NotEqual(platformIDs[0], platformIDs[1])
}

func (suite *PublishServiceTestSuite) TestCreatePost_DuplicatePlatformPublishedOnce() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.linkedIn.On("PublishPost", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("urn:li:share:1", nil).Once()
	suite.posts.On("SavePost", ctx, mock.AnythingOfType("domain.Post")).Return(nil).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{
		UserID: "u1", Content: "x", Platforms: []string{"LINKEDIN", "linkedin"},
	})

	suite.Require().NoError(err)
	suite.Len(result.Created, 1)
}

func (suite *PublishServiceTestSuite) TestCreatePost_SaveFailureIsPlatformError() {
	ctx := context.Background()
	suite.credentials.On("ResolveCredential", ctx, "u1", domain.ProviderLinkedIn).Return(suite.liCred, nil).Once()
	suite.linkedIn.On("PublishPost", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("urn:li:share:1", nil).Once()
	suite.posts.On("SavePost", ctx, mock.AnythingOfType("domain.Post")).Return(errors.New("db down")).Once()

	result, err := suite.service.CreatePost(ctx, domain.CreatePostCommand{UserID: "u1", Content: "x", Platforms: []string{"LINKEDIN"}})

	suite.Require().NoError(err)
	suite.True(result.Failed())
	suite.Equal("Published to LinkedIn but failed to save the post", result.Errors[0].Message)
}

func (suite *PublishServiceTestSuite) TestListPosts_ClampsLimit() {
	ctx := context.Background()
	next := "tok"
	suite.posts.On("ListPostsByUser", ctx, "u1", (*domain.Platform)(nil), 100, (*string)(nil)).
		Return([]domain.Post{{PostID: "a"}}, &next, nil).Once()

	posts, token, err := suite.service.ListPosts(ctx, "u1", nil, 500, nil)

	suite.Require().NoError(err)
	suite.Len(posts, 1)
	suite.Equal(&next, token)
}
