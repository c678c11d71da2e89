package dto

import (
	"time"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// CreatePostRequest is accepted as JSON or as multipart form fields (with an optional "image" file).
type CreatePostRequest struct {
	Content        string     `json:"content" form:"content" binding:"required,max=3000"`
	MediaURL       *string    `json:"mediaUrl" form:"mediaUrl" binding:"omitempty,url"`
	Link           *string    `json:"link" form:"link" binding:"omitempty,url"`
	Platforms      []string   `json:"platforms" form:"platforms"`
	ScheduledAt    *time.Time `json:"scheduledAt" form:"scheduledAt" time_format:"2006-01-02T15:04:05Z07:00"`
	FacebookPageID *string    `json:"facebookPageId" form:"facebookPageId"`
}

// CreatePostResponse lists created posts and per-platform errors. Message is set when nothing was created.
type CreatePostResponse struct {
	Message string                 `json:"message,omitempty"`
	Created []domain.Post          `json:"created"`
	Errors  []domain.PlatformError `json:"errors"`
}

// ToCreatePostResponse builds the response body for a publish result.
func ToCreatePostResponse(result *domain.PublishResult) CreatePostResponse {
	resp := CreatePostResponse{
		Created: result.Created,
		Errors:  result.Errors,
	}
	if resp.Created == nil {
		resp.Created = []domain.Post{}
	}
	if resp.Errors == nil {
		resp.Errors = []domain.PlatformError{}
	}
	if result.Failed() {
		resp.Message = "Failed to publish to any platform"
	}
	return resp
}

// ListPostsParams defines query parameters for listing stored posts.
type ListPostsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken *string `form:"nextToken"`
	Platform  string  `form:"platform" binding:"omitempty,platform"`
}

type ListPostsResponse struct {
	Posts     []domain.Post `json:"posts"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// ProviderPostsParams defines query parameters for reading posts from a provider.
type ProviderPostsParams struct {
	Limit  int     `form:"limit,default=10" binding:"min=0,max=100"`
	PageID *string `form:"pageId"`
}

type ProviderPostsResponse struct {
	Posts []domain.PostSummary `json:"posts"`
}

type FacebookPagesResponse struct {
	Pages []domain.FacebookPage `json:"pages"`
}
