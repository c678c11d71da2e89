package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

type organizationHandler struct {
	orgService portssvc.OrganizationSvc
}

func registerOrganizationRoutes(rg *gin.RouterGroup, orgService portssvc.OrganizationSvc) {
	h := &organizationHandler{orgService: orgService}
	rg.GET("/organization", h.getOrganization)
	rg.PUT("/organization", h.upsertOrganization)
}

// getOrganization godoc
// @Summary Get the caller's organization profile
// @Tags organization
// @Produce json
// @Success 200 {object} domain.Organization
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	org, err := h.orgService.GetOrganization(c.Request.Context(), userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Message: "Organization not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to load organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

// upsertOrganization godoc
// @Summary Create or replace the caller's organization profile
// @Tags organization
// @Accept json
// @Produce json
// @Param organization body dto.UpsertOrganizationRequest true "Organization profile"
// @Success 200 {object} domain.Organization
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /organization [put]
func (h *organizationHandler) upsertOrganization(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpsertOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	org, err := h.orgService.UpsertOrganization(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save organization")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Organization saved", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusOK, org)
}
