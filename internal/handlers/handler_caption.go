package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/gin-gonic/gin"
)

type captionHandler struct {
	captionService portssvc.CaptionSvc
}

func registerCaptionRoutes(rg *gin.RouterGroup, captionService portssvc.CaptionSvc, limit gin.HandlerFunc) {
	h := &captionHandler{captionService: captionService}
	chain := []gin.HandlerFunc{}
	if limit != nil {
		chain = append(chain, limit)
	}
	rg.POST("/ai/caption", append(chain, h.generateCaption)...)
}

// generateCaption godoc
// @Summary Draft a post caption
// @Description Asks the configured language model for a caption. Answers 503 when no model is configured.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.CaptionRequest true "Caption prompt"
// @Success 200 {object} dto.CaptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /ai/caption [post]
func (h *captionHandler) generateCaption(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	caption, err := h.captionService.GenerateCaption(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to generate caption")
		return
	}
	c.JSON(http.StatusOK, dto.CaptionResponse{Caption: caption})
}
