package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/handlers"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const frontendURL = "http://localhost:3000"

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	cfg          *config.Config
	userID       string
	auth         *MockAuthService
	publish      *MockPublishService
	feed         *MockFeedService
	oauth        *MockOAuthService
	credentials  *MockCredentialService
	organization *MockOrganizationService
	caption      *MockCaptionService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = &config.Config{
		IsProduction:               true,
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "smd-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		AccessTokenCookieName:      "smd_access",
		RefreshTokenCookieName:     "smd_refresh",
		FrontendBaseURL:            frontendURL + "/",
	}
	s.userID = uuid.NewString()
	s.auth = new(MockAuthService)
	s.publish = new(MockPublishService)
	s.feed = new(MockFeedService)
	s.oauth = new(MockOAuthService)
	s.credentials = new(MockCredentialService)
	s.organization = new(MockOrganizationService)
	s.caption = new(MockCaptionService)

	s.router = gin.New()
	err := handlers.RegisterRoutes(s.router, s.cfg, &portssvc.ServiceContainer{
		Auth:         s.auth,
		Publish:      s.publish,
		Feed:         s.feed,
		OAuth:        s.oauth,
		Credential:   s.credentials,
		Organization: s.organization,
		Caption:      s.caption,
	}, &utils.PosthogClientWrapper{})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
		s.auth, s.publish, s.feed, s.oauth, s.credentials, s.organization, s.caption,
	} {
		m.AssertExpectations(s.T())
	}
}

func (s *HandlerTestSuite) token() string {
	tok, err := utils.GenerateJWT(s.userID, string(domain.RoleUser), s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)
	return tok
}

func (s *HandlerTestSuite) do(req *http.Request, authenticated bool) *httptest.ResponseRecorder {
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+s.token())
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) jsonRequest(method, path string, body any) *http.Request {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/health", nil), false)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestProtectedRouteRequiresAuth() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/posts", nil), false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestAccessCookieAuthenticates() {
	s.publish.On("ListPosts", mock.Anything, s.userID, (*domain.Platform)(nil), 20, (*string)(nil)).
		Return(nil, nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.AddCookie(&http.Cookie{Name: s.cfg.AccessTokenCookieName, Value: s.token()})
	w := s.do(req, false)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListPostsResponse
	s.decode(w, &resp)
	s.NotNil(resp.Posts, "empty list is serialized as []")
	s.Empty(resp.Posts)
}

func (s *HandlerTestSuite) TestCreatePost_JSONSuccess() {
	content := gofakeit.Sentence(8)
	platformID := "123_456"
	s.publish.On("CreatePost", mock.Anything, mock.MatchedBy(func(cmd domain.CreatePostCommand) bool {
		return cmd.UserID == s.userID && cmd.Content == content &&
			len(cmd.Platforms) == 2 && cmd.Image == nil
	})).Return(&domain.PublishResult{
		Created: []domain.Post{{PostID: uuid.NewString(), Platform: domain.PlatformFacebook, Status: domain.PostStatusPublished, PlatformPostID: &platformID}},
		Errors:  []domain.PlatformError{{Platform: domain.PlatformLinkedIn, Message: "Platform not connected"}},
	}, nil).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"content":   content,
		"platforms": []string{"FACEBOOK", "LINKEDIN"},
	}), true)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.CreatePostResponse
	s.decode(w, &resp)
	s.Len(resp.Created, 1)
	s.Len(resp.Errors, 1)
	s.Empty(resp.Message)
}

func (s *HandlerTestSuite) TestCreatePost_AllPlatformsFailed() {
	s.publish.On("CreatePost", mock.Anything, mock.Anything).Return(&domain.PublishResult{
		Errors: []domain.PlatformError{{Platform: domain.PlatformLinkedIn, Message: "Platform token expired, please reconnect"}},
	}, nil).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"content":   "hello",
		"platforms": []string{"LINKEDIN"},
	}), true)

	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.CreatePostResponse
	s.decode(w, &resp)
	s.Equal("Failed to publish to any platform", resp.Message)
	s.NotNil(resp.Created)
	s.Equal("Platform token expired, please reconnect", resp.Errors[0].Message)
}

func (s *HandlerTestSuite) TestCreatePost_MissingContent() {
	w := s.do(s.jsonRequest(http.MethodPost, "/api/posts", map[string]any{"platforms": []string{"LINKEDIN"}}), true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCreatePost_ValidationErrorListsFields() {
	s.publish.On("CreatePost", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("unsupported platforms", "TWITTER", "MYSPACE")).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"content":   "hello",
		"platforms": []string{"TWITTER", "MYSPACE"},
	}), true)

	s.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("unsupported platforms", resp.Message)
	s.Equal([]string{"TWITTER", "MYSPACE"}, resp.Fields)
}

func (s *HandlerTestSuite) TestCreatePost_MultipartWithImage() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	s.Require().NoError(mw.WriteField("content", "with picture"))
	s.Require().NoError(mw.WriteField("platforms", "FACEBOOK, LINKEDIN"))
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write([]byte("\x89PNG fake"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	s.publish.On("CreatePost", mock.Anything, mock.MatchedBy(func(cmd domain.CreatePostCommand) bool {
		return cmd.Content == "with picture" &&
			len(cmd.Platforms) == 2 && cmd.Platforms[0] == "FACEBOOK" && cmd.Platforms[1] == "LINKEDIN" &&
			cmd.Image != nil && cmd.Image.Filename == "pic.png" && cmd.Image.ContentType == "image/png"
	})).Return(&domain.PublishResult{
		Created: []domain.Post{{Platform: domain.PlatformFacebook, Status: domain.PostStatusPublished}},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req, true)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestCreatePost_MultipartRejectsNonImage() {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	s.Require().NoError(mw.WriteField("content", "hello"))
	s.Require().NoError(mw.WriteField("platforms", "FACEBOOK"))
	part, err := mw.CreateFormFile("image", "notes.txt")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("plain text"))
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.publish.AssertNotCalled(s.T(), "CreatePost", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestListPosts_PlatformFilter() {
	next := "tok-2"
	s.publish.On("ListPosts", mock.Anything, s.userID,
		mock.MatchedBy(func(p *domain.Platform) bool { return p != nil && *p == domain.PlatformLinkedIn }),
		5, (*string)(nil)).
		Return([]domain.Post{{PostID: "p1", Platform: domain.PlatformLinkedIn}}, &next, nil).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/posts?platform=linkedin&limit=5", nil), true)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListPostsResponse
	s.decode(w, &resp)
	s.Len(resp.Posts, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal(next, *resp.NextToken)
}

func (s *HandlerTestSuite) TestListPosts_UnknownPlatform() {
	w := s.do(httptest.NewRequest(http.MethodGet, "/api/posts?platform=twitter", nil), true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestFacebookPosts_NotConnected() {
	s.feed.On("GetFacebookPosts", mock.Anything, s.userID, (*string)(nil), 10).
		Return(nil, apperrors.ErrNotConnected).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/posts/facebook", nil), true)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestLinkedInPosts_UpstreamMessage() {
	s.feed.On("GetLinkedInPosts", mock.Anything, s.userID, 3).
		Return(nil, &apperrors.UpstreamError{Provider: "linkedin", StatusCode: 429, Message: "Throttled"}).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/posts/linkedin?limit=3", nil), true)

	s.Equal(http.StatusBadGateway, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Throttled", resp.Message)
}

func (s *HandlerTestSuite) TestFacebookPages() {
	s.feed.On("ListFacebookPages", mock.Anything, s.userID).
		Return([]domain.FacebookPage{{ID: "p1", Name: "Bakery", PageAccessToken: "secret"}}, nil).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/facebook/pages", nil), true)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Bakery")
	s.NotContains(w.Body.String(), "secret")
}

func (s *HandlerTestSuite) TestProviderAuth_Redirect() {
	s.oauth.On("BeginAuth", mock.Anything, domain.ProviderLinkedIn, s.userID).
		Return("https://www.linkedin.com/oauth/v2/authorization?state=abc", nil).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/linkedin/auth?redirect=true", nil), true)

	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://www.linkedin.com/oauth/v2/authorization?state=abc", w.Header().Get("Location"))
}

func (s *HandlerTestSuite) TestProviderAuth_Anonymous() {
	s.oauth.On("BeginAuth", mock.Anything, domain.ProviderFacebook, "").Return("https://facebook.example/dialog", nil).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/facebook/auth", nil), false)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.AuthURLResponse
	s.decode(w, &resp)
	s.Equal("https://facebook.example/dialog", resp.URL)
}

func (s *HandlerTestSuite) redirectQuery(w *httptest.ResponseRecorder) url.Values {
	s.Require().Equal(http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	s.Require().NoError(err)
	s.Equal(frontendURL+"/dashboard", loc.Scheme+"://"+loc.Host+loc.Path)
	return loc.Query()
}

func (s *HandlerTestSuite) TestProviderCallback_Reconnected() {
	s.oauth.On("CompleteAuth", mock.Anything, domain.ProviderFacebook,
		domain.CallbackParams{Code: "c1", State: "st"}, "").
		Return(&domain.ConnectResult{Provider: domain.ProviderFacebook, UserID: s.userID, Reconnected: true}, nil).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/facebook/callback?code=c1&state=st", nil), false)

	q := s.redirectQuery(w)
	s.Equal("facebook", q.Get("provider"))
	s.Equal("reconnected", q.Get("status"))
}

func (s *HandlerTestSuite) TestProviderCallback_InvalidState() {
	s.oauth.On("CompleteAuth", mock.Anything, domain.ProviderLinkedIn, mock.Anything, s.userID).
		Return(nil, apperrors.ErrInvalidState).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/linkedin/callback?code=c1&state=forged", nil), true)

	q := s.redirectQuery(w)
	s.Equal("error", q.Get("status"))
	s.Equal("Authorization expired or was already used, please try again", q.Get("message"))
}

func (s *HandlerTestSuite) TestProviderDisconnect() {
	s.credentials.On("ClearCredential", mock.Anything, s.userID, domain.ProviderLinkedIn).Return(nil).Once()

	w := s.do(httptest.NewRequest(http.MethodDelete, "/api/linkedin/disconnect", nil), true)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) sessionFor(email string) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		User:                  &domain.User{UserID: s.userID, Email: email, Name: gofakeit.Name(), Role: domain.RoleUser, AuthProvider: domain.ProviderLocal},
		AccessToken:           "access",
		AccessTokenExpiresAt:  now.Add(15 * time.Minute),
		RefreshToken:          "refresh",
		RefreshTokenExpiresAt: now.Add(24 * time.Hour),
	}
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *HandlerTestSuite) TestLogin_SetsCookies() {
	email := strings.ToLower(gofakeit.Email())
	s.auth.On("Login", mock.Anything, email, "password123").Return(s.sessionFor(email), nil).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: "password123"}), false)

	s.Equal(http.StatusOK, w.Code)
	access := cookieByName(w, s.cfg.AccessTokenCookieName)
	s.Require().NotNil(access)
	s.Equal("access", access.Value)
	s.True(access.HttpOnly)
	refresh := cookieByName(w, s.cfg.RefreshTokenCookieName)
	s.Require().NotNil(refresh)
	s.Equal("refresh", refresh.Value)

	var resp dto.AuthResponse
	s.decode(w, &resp)
	s.Equal(email, resp.User.Email)
}

func (s *HandlerTestSuite) TestRefresh_FromCookie() {
	s.auth.On("Refresh", mock.Anything, "old-refresh").Return(s.sessionFor("a@example.com"), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: s.cfg.RefreshTokenCookieName, Value: "old-refresh"})
	w := s.do(req, false)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestRefresh_ExpiredClearsCookies() {
	s.auth.On("Refresh", mock.Anything, "stale").
		Return(nil, apperrors.NewAppError(http.StatusUnauthorized, "Refresh token expired", apperrors.ErrRefreshTokenExpired)).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/auth/refresh", dto.RefreshRequest{RefreshToken: "stale"}), false)

	s.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Refresh token expired", resp.Message)
	access := cookieByName(w, s.cfg.AccessTokenCookieName)
	s.Require().NotNil(access)
	s.Less(access.MaxAge, 0)
}

func (s *HandlerTestSuite) TestForgotPassword_AlwaysOK() {
	s.auth.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(nil).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/auth/forgot-password", dto.ForgotPasswordRequest{Email: "nobody@example.com"}), false)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestOrganization_NotFound() {
	s.organization.On("GetOrganization", mock.Anything, s.userID).Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(httptest.NewRequest(http.MethodGet, "/api/organization", nil), true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestOrganization_Upsert() {
	req := dto.UpsertOrganizationRequest{Name: gofakeit.Company(), MarketArea: "Nordics"}
	s.organization.On("UpsertOrganization", mock.Anything, s.userID, req).
		Return(&domain.Organization{OrganizationID: uuid.NewString(), UserID: s.userID, Name: req.Name}, nil).Once()

	w := s.do(s.jsonRequest(http.MethodPut, "/api/organization", req), true)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestCaption_NotConfigured() {
	s.caption.On("GenerateCaption", mock.Anything, s.userID, mock.Anything).
		Return("", apperrors.NewServiceUnavailableError("Caption generation is not configured")).Once()

	w := s.do(s.jsonRequest(http.MethodPost, "/api/ai/caption", dto.CaptionRequest{Prompt: "spring sale"}), true)

	s.Equal(http.StatusServiceUnavailable, w.Code)
	var resp handlers.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Caption generation is not configured", resp.Message)
}
