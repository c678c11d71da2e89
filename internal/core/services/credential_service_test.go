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

type CredentialServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	linkedIn *MockLinkedInClient
	service  portssvc.CredentialSvc
}

func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.linkedIn = new(MockLinkedInClient)
	suite.service = services.NewCredentialService(suite.userRepo, suite.linkedIn, services.WithClock(fixedClock))
}

func TestCredentialServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}

func (suite *CredentialServiceTestSuite) TestGetCredential_NotConnected() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1"}, nil)

	cred, err := suite.service.GetCredential(ctx, "u1", domain.ProviderFacebook)
	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrNotConnected)

	status, err := suite.service.Status(ctx, "u1", domain.ProviderLinkedIn)
	suite.Require().NoError(err)
	suite.False(status.Connected)
	suite.False(status.Expired)
}

func (suite *CredentialServiceTestSuite) TestGetCredential_Expired() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{
		UserID:              "u1",
		FacebookToken:       strPtr("fb"),
		FacebookID:          strPtr("fb-1"),
		FacebookTokenExpiry: timePtr(testNow),
	}, nil)

	cred, err := suite.service.GetCredential(ctx, "u1", domain.ProviderFacebook)
	suite.ErrorIs(err, apperrors.ErrCredentialExpired)
	suite.Require().NotNil(cred, "expired credential is still returned")
	suite.Equal("fb", cred.AccessToken)

	status, err := suite.service.Status(ctx, "u1", domain.ProviderFacebook)
	suite.Require().NoError(err)
	suite.True(status.Connected)
	suite.True(status.Expired)
	suite.Equal("fb-1", status.ProviderUserID)
}

func (suite *CredentialServiceTestSuite) TestSetCredential_RejectsNonSocialProvider() {
	err := suite.service.SetCredential(context.Background(), "u1", domain.Credential{Provider: domain.ProviderGoogle})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.userRepo.AssertNotCalled(suite.T(), "UpdateCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialServiceTestSuite) TestClearCredential() {
	ctx := context.Background()
	suite.userRepo.On("ClearCredential", ctx, "u1", domain.ProviderLinkedIn, testNow).Return(nil).Once()

	suite.NoError(suite.service.ClearCredential(ctx, "u1", domain.ProviderLinkedIn))
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestResolveCredential_RefreshesLinkedInOnce() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{
		UserID:               "u1",
		LinkedInAccessToken:  strPtr("old"),
		LinkedInRefreshToken: strPtr("refresh"),
		LinkedInExpiresAt:    timePtr(testNow.Add(-time.Minute)),
		LinkedInID:           strPtr("urn:li:person:abc"),
	}, nil).Once()
	suite.linkedIn.On("RefreshToken", ctx, "refresh").
		Return(domain.TokenBundle{AccessToken: "new", ExpiresIn: 3600}, nil).Once()
	suite.userRepo.On("UpdateCredential", ctx, "u1", mock.MatchedBy(func(c domain.Credential) bool {
		return c.AccessToken == "new" && c.ProviderUserID == "urn:li:person:abc" &&
			c.RefreshToken != nil && *c.RefreshToken == "refresh" &&
			c.ExpiresAt != nil && c.ExpiresAt.Equal(testNow.Add(time.Hour))
	}), testNow).Return(nil).Once()

	cred, err := suite.service.ResolveCredential(ctx, "u1", domain.ProviderLinkedIn)

	suite.Require().NoError(err)
	suite.Equal("new", cred.AccessToken)
	suite.linkedIn.AssertNumberOfCalls(suite.T(), "RefreshToken", 1)
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestResolveCredential_RefreshFailureSurfacesExpiry() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{
		UserID:               "u1",
		LinkedInAccessToken:  strPtr("old"),
		LinkedInRefreshToken: strPtr("refresh"),
		LinkedInExpiresAt:    timePtr(testNow.Add(-time.Minute)),
		LinkedInID:           strPtr("urn:li:person:abc"),
	}, nil).Once()
	suite.linkedIn.On("RefreshToken", ctx, "refresh").
		Return(domain.TokenBundle{}, errors.New("invalid_grant")).Once()

	cred, err := suite.service.ResolveCredential(ctx, "u1", domain.ProviderLinkedIn)

	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrCredentialExpired)
	suite.userRepo.AssertNotCalled(suite.T(), "UpdateCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialServiceTestSuite) TestResolveCredential_FacebookExpiryIsNotRefreshed() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByID", ctx, "u1").Return(&domain.User{
		UserID:              "u1",
		FacebookToken:       strPtr("fb"),
		FacebookID:          strPtr("fb-1"),
		FacebookTokenExpiry: timePtr(testNow.Add(-time.Hour)),
	}, nil).Once()

	cred, err := suite.service.ResolveCredential(ctx, "u1", domain.ProviderFacebook)

	suite.Nil(cred)
	suite.ErrorIs(err, apperrors.ErrCredentialExpired)
	suite.linkedIn.AssertNotCalled(suite.T(), "RefreshToken", mock.Anything, mock.Anything)
}
