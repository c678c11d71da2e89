package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/SscSPs/social_dashboard/internal/platform/config"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// providerHandler serves the connect flow and connection management of one social provider.
type providerHandler struct {
	provider    domain.Provider
	oauth       portssvc.OAuthSvc
	credentials portssvc.CredentialSvc
	frontendURL string
	posthog     *utils.PosthogClientWrapper
}

func newProviderHandler(provider domain.Provider, services *portssvc.ServiceContainer, cfg *config.Config, posthog *utils.PosthogClientWrapper) *providerHandler {
	return &providerHandler{
		provider:    provider,
		oauth:       services.OAuth,
		credentials: services.Credential,
		frontendURL: strings.TrimRight(cfg.FrontendBaseURL, "/"),
		posthog:     posthog,
	}
}

// registerProviderRoutes mounts /{provider}/... for facebook and linkedin.
func registerProviderRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret, cfg.AccessTokenCookieName)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg.JWTSecret, cfg.AccessTokenCookieName)

	for _, provider := range []domain.Provider{domain.ProviderFacebook, domain.ProviderLinkedIn} {
		h := newProviderHandler(provider, services, cfg, posthog)
		group := rg.Group("/" + string(provider))
		group.GET("/auth", optionalAuth, h.beginAuth)
		group.GET("/callback", optionalAuth, h.callback)
		group.GET("/status", requireAuth, h.status)
		group.DELETE("/disconnect", requireAuth, h.disconnect)
	}

	fb := newFeedHandler(services.Feed)
	rg.GET("/facebook/pages", requireAuth, fb.listFacebookPages)
}

// beginAuth godoc
// @Summary Start the provider connect flow
// @Description Answers with the authorization URL, or redirects to it when redirect=true.
// @Tags providers
// @Produce json
// @Param provider path string true "facebook or linkedin"
// @Param redirect query bool false "Redirect instead of answering JSON"
// @Success 200 {object} dto.AuthURLResponse
// @Success 302
// @Failure 503 {object} ErrorResponse "Provider not configured"
// @Router /{provider}/auth [get]
func (h *providerHandler) beginAuth(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	authURL, err := h.oauth.BeginAuth(c.Request.Context(), h.provider, userID)
	if err != nil {
		respondError(c, err, "Failed to start authorization")
		return
	}
	if c.Query("redirect") == "true" {
		c.Redirect(http.StatusFound, authURL)
		return
	}
	c.JSON(http.StatusOK, dto.AuthURLResponse{URL: authURL})
}

// callback godoc
// @Summary Provider OAuth callback
// @Description Completes the connect flow and redirects to the dashboard with the outcome.
// @Tags providers
// @Param provider path string true "facebook or linkedin"
// @Param code query string false "Authorization code"
// @Param state query string false "State issued by the auth endpoint"
// @Success 302
// @Router /{provider}/callback [get]
func (h *providerHandler) callback(c *gin.Context) {
	var query dto.CallbackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.redirectResult(c, "error", "Invalid callback request")
		return
	}
	sessionUserID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.oauth.CompleteAuth(c.Request.Context(), h.provider, domain.CallbackParams{
		Code:             query.Code,
		State:            query.State,
		Error:            query.Error,
		ErrorDescription: query.ErrorDescription,
	}, sessionUserID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Provider connect failed",
			slog.String("provider", string(h.provider)), slog.String("error", err.Error()))
		h.redirectResult(c, "error", callbackErrorMessage(err))
		return
	}

	h.posthog.Enqueue(result.UserID, utils.EventProviderConnected, map[string]any{
		"provider":    string(h.provider),
		"reconnected": result.Reconnected,
	})
	status := "connected"
	if result.Reconnected {
		status = "reconnected"
	}
	h.redirectResult(c, status, "")
}

func callbackErrorMessage(err error) string {
	if errors.Is(err, apperrors.ErrInvalidState) {
		return "Authorization expired or was already used, please try again"
	}
	if apperrors.HTTPStatus(err) == http.StatusInternalServerError {
		return "Failed to connect account"
	}
	return apperrors.UserMessage(err, "Failed to connect account")
}

func (h *providerHandler) redirectResult(c *gin.Context, status, message string) {
	q := url.Values{}
	q.Set("provider", string(h.provider))
	q.Set("status", status)
	if message != "" {
		q.Set("message", message)
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/dashboard?"+q.Encode())
}

// status godoc
// @Summary Provider connection status
// @Tags providers
// @Produce json
// @Param provider path string true "facebook or linkedin"
// @Success 200 {object} domain.CredentialStatus
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /{provider}/status [get]
func (h *providerHandler) status(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	status, err := h.credentials.Status(c.Request.Context(), userID, h.provider)
	if err != nil {
		respondError(c, err, "Failed to load connection status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// disconnect godoc
// @Summary Disconnect a provider
// @Description Deletes the stored provider token. Posts already published stay on the provider.
// @Tags providers
// @Produce json
// @Param provider path string true "facebook or linkedin"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /{provider}/disconnect [delete]
func (h *providerHandler) disconnect(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.credentials.ClearCredential(c.Request.Context(), userID, h.provider); err != nil {
		respondError(c, err, "Failed to disconnect")
		return
	}
	middleware.PosthogEvent(c, h.posthog, utils.EventProviderDisconnect, map[string]any{"provider": string(h.provider)})
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Disconnected"})
}
