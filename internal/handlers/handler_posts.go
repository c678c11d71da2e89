package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/SscSPs/social_dashboard/internal/apperrors"
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/social_dashboard/internal/core/ports/services"
	"github.com/SscSPs/social_dashboard/internal/dto"
	"github.com/SscSPs/social_dashboard/internal/middleware"
	"github.com/SscSPs/social_dashboard/internal/providers/media"
	"github.com/SscSPs/social_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const imageFormField = "image"

type postHandler struct {
	publishService portssvc.PublishSvc
	posthog        *utils.PosthogClientWrapper
	maxImageBytes  int64
}

func registerPostRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	h := &postHandler{publishService: services.Publish, posthog: posthog, maxImageBytes: media.DefaultMaxBytes}
	feed := newFeedHandler(services.Feed)

	posts := rg.Group("/posts")
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/facebook", feed.facebookPosts)
		posts.GET("/linkedin", feed.linkedInPosts)
	}
}

// createPost godoc
// @Summary Publish a post
// @Description Publishes to every selected platform, or records a scheduled post on the first platform when scheduledAt is set.
// @Description Answers 201 when at least one platform succeeded and 400 when all failed; inspect errors either way.
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Param post body dto.CreatePostRequest true "Post content"
// @Param image formData file false "Image to attach (multipart only)"
// @Success 201 {object} dto.CreatePostResponse
// @Failure 400 {object} dto.CreatePostResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *postHandler) createPost(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	var image *domain.MediaUpload
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
			respondBindError(c, err)
			return
		}
		req.Platforms = splitPlatforms(req.Platforms)

		fileHeader, err := c.FormFile(imageFormField)
		if err != nil && err != http.ErrMissingFile {
			respondBindError(c, err)
			return
		}
		if fileHeader != nil {
			image, err = h.readImage(fileHeader)
			if err != nil {
				respondError(c, err, "Failed to read image")
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.publishService.CreatePost(c.Request.Context(), domain.CreatePostCommand{
		UserID:         userID,
		Content:        req.Content,
		Link:           req.Link,
		MediaURL:       req.MediaURL,
		Image:          image,
		Platforms:      req.Platforms,
		ScheduledAt:    req.ScheduledAt,
		FacebookPageID: req.FacebookPageID,
	})
	if err != nil {
		respondError(c, err, "Failed to create post")
		return
	}

	for _, post := range result.Created {
		if post.Status == domain.PostStatusPublished {
			middleware.PosthogEvent(c, h.posthog, utils.EventPostPublished, map[string]any{
				"platform":  string(post.Platform),
				"has_image": image != nil || req.MediaURL != nil,
			})
		}
	}

	status := http.StatusCreated
	if result.Failed() {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ToCreatePostResponse(result))
}

// splitPlatforms accepts both repeated form fields and a comma separated value.
func splitPlatforms(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, p := range strings.Split(entry, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (h *postHandler) readImage(fh *multipart.FileHeader) (*domain.MediaUpload, error) {
	if fh.Size > h.maxImageBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("image exceeds %d bytes", h.maxImageBytes), imageFormField)
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewValidationError("uploaded file is not an image", imageFormField)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded image: %w", err)
	}
	if int64(len(data)) > h.maxImageBytes {
		return nil, apperrors.NewValidationError(fmt.Sprintf("image exceeds %d bytes", h.maxImageBytes), imageFormField)
	}
	return &domain.MediaUpload{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

// listPosts godoc
// @Summary List published and scheduled posts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Param platform query string false "FACEBOOK or LINKEDIN"
// @Success 200 {object} dto.ListPostsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /posts [get]
func (h *postHandler) listPosts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	var platform *domain.Platform
	if params.Platform != "" {
		p, _ := domain.ParsePlatform(params.Platform)
		platform = &p
	}

	posts, next, err := h.publishService.ListPosts(c.Request.Context(), userID, platform, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list posts")
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	c.JSON(http.StatusOK, dto.ListPostsResponse{Posts: posts, NextToken: next})
}
