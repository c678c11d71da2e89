package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvc
	userService portssvc.UserSvcFacade
	cfg         *config.Config
	posthog     *utils.PosthogClientWrapper
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth portssvc.AuthSvc, users portssvc.UserSvcFacade, cfg *config.Config, posthog *utils.PosthogClientWrapper) *AuthHandler {
	return &AuthHandler{authService: auth, userService: users, cfg: cfg, posthog: posthog}
}

// registerAuthRoutes sets up the routes for authentication.
// limit guards the credential endpoints; it may be nil.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper, limit gin.HandlerFunc) {
	h := NewAuthHandler(services.Auth, services.User, cfg, posthog)

	guarded := []gin.HandlerFunc{}
	if limit != nil {
		guarded = append(guarded, limit)
	}
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guarded...), handler)
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", with(h.Register)...)
		auth.POST("/login", with(h.Login)...)
		auth.POST("/forgot-password", with(h.ForgotPassword)...)
		auth.POST("/reset-password", with(h.ResetPassword)...)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret, cfg.AccessTokenCookieName), h.Me)
	}
}

// setSessionCookies writes both session tokens as HttpOnly cookies.
func setSessionCookies(c *gin.Context, cfg *config.Config, session *domain.Session) {
	now := time.Now()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.AccessTokenCookieName, session.AccessToken, maxAge(session.AccessTokenExpiresAt, now), "/", "", cfg.CookieSecure, true)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.RefreshTokenCookieName, session.RefreshToken, maxAge(session.RefreshTokenExpiresAt, now), "/", "", cfg.CookieSecure, true)
}

func clearSessionCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.AccessTokenCookieName, "", -1, "/", "", cfg.CookieSecure, true)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.RefreshTokenCookieName, "", -1, "/", "", cfg.CookieSecure, true)
}

func maxAge(expiresAt, now time.Time) int {
	secs := int(expiresAt.Sub(now).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}

func toAuthResponse(session *domain.Session) dto.AuthResponse {
	return dto.AuthResponse{
		User:                  dto.ToUserResponse(session.User),
		AccessToken:           session.AccessToken,
		AccessTokenExpiresAt:  session.AccessTokenExpiresAt,
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.RefreshTokenExpiresAt,
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a local account and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	setSessionCookies(c, h.cfg, session)
	h.posthog.Enqueue(session.User.UserID, utils.EventUserRegistered, map[string]any{"provider": string(domain.ProviderLocal)})
	c.JSON(http.StatusCreated, toAuthResponse(session))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and sets the session cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}
	setSessionCookies(c, h.cfg, session)
	c.JSON(http.StatusOK, toAuthResponse(session))
}

// Refresh godoc
// @Summary Rotate session tokens
// @Description Exchanges the refresh token (cookie or body) for a new token pair. The old refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest false "Refresh token for clients without cookies"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw := h.refreshTokenFrom(c)
	session, err := h.authService.Refresh(c.Request.Context(), raw)
	if err != nil {
		clearSessionCookies(c, h.cfg)
		respondError(c, err, "Failed to refresh session")
		return
	}
	setSessionCookies(c, h.cfg, session)
	c.JSON(http.StatusOK, toAuthResponse(session))
}

// Logout godoc
// @Summary Log out
// @Description Deletes the refresh token and clears the session cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.refreshTokenFrom(c)); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Logout could not delete refresh token", slog.String("error", err.Error()))
	}
	clearSessionCookies(c, h.cfg)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// ForgotPassword godoc
// @Summary Request a password reset email
// @Description Always answers 200 so callers cannot probe which emails are registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to process password reset request")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email is registered, a reset link has been sent"})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Sets a new password from a reset token and signs out every session of the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	clearSessionCookies(c, h.cfg)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// refreshTokenFrom prefers the cookie and falls back to a JSON body.
func (h *AuthHandler) refreshTokenFrom(c *gin.Context) string {
	if raw, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && raw != "" {
		return raw
	}
	var req dto.RefreshRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&req)
	}
	return req.RefreshToken
}
