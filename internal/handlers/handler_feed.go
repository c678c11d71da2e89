package handlers

import (
	"net/http"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/gin-gonic/gin"
)

// feedHandler reads content straight from the providers.
type feedHandler struct {
	feedService portssvc.FeedSvc
}

func newFeedHandler(feed portssvc.FeedSvc) *feedHandler {
	return &feedHandler{feedService: feed}
}

// facebookPosts godoc
// @Summary Recent posts of a Facebook page
// @Description Reads the selected page, or the first managed page, with engagement metrics.
// @Tags feeds
// @Produce json
// @Param pageId query string false "Page id"
// @Param limit query int false "Number of posts" default(10)
// @Success 200 {object} dto.ProviderPostsResponse
// @Failure 400 {object} ErrorResponse "Not connected or no pages"
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/facebook [get]
func (h *feedHandler) facebookPosts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ProviderPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	posts, err := h.feedService.GetFacebookPosts(c.Request.Context(), userID, params.PageID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to fetch Facebook posts")
		return
	}
	if posts == nil {
		posts = []domain.PostSummary{}
	}
	c.JSON(http.StatusOK, dto.ProviderPostsResponse{Posts: posts})
}

// linkedInPosts godoc
// @Summary Recent LinkedIn posts
// @Description Engagement metrics are not available from LinkedIn and are always zero.
// @Tags feeds
// @Produce json
// @Param limit query int false "Number of posts" default(10)
// @Success 200 {object} dto.ProviderPostsResponse
// @Failure 400 {object} ErrorResponse "Not connected"
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts/linkedin [get]
func (h *feedHandler) linkedInPosts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ProviderPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	posts, err := h.feedService.GetLinkedInPosts(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to fetch LinkedIn posts")
		return
	}
	if posts == nil {
		posts = []domain.PostSummary{}
	}
	c.JSON(http.StatusOK, dto.ProviderPostsResponse{Posts: posts})
}

// listFacebookPages godoc
// @Summary Facebook pages the user manages
// @Tags feeds
// @Produce json
// @Success 200 {object} dto.FacebookPagesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /facebook/pages [get]
func (h *feedHandler) listFacebookPages(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	pages, err := h.feedService.ListFacebookPages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch Facebook pages")
		return
	}
	if pages == nil {
		pages = []domain.FacebookPage{}
	}
	c.JSON(http.StatusOK, dto.FacebookPagesResponse{Pages: pages})
}
