package repositories

import (
	"context"

	"github.com/SscSPs/social_dashboard/internal/core/domain"
)

// PostReader defines read operations for stored posts
type PostReader interface {
	// ListPostsByUser returns a user's posts newest first using token-based pagination,
	// optionally restricted to one platform.
	// It returns the posts, a token for the next page, and an error.
	ListPostsByUser(ctx context.Context, userID string, platform *domain.Platform, limit int, nextToken *string) ([]domain.Post, *string, error)
}

// PostWriter defines write operations for stored posts
type PostWriter interface {
	// SavePost persists a post row. Posts are never updated afterwards.
	SavePost(ctx context.Context, post domain.Post) error
}

// PostRepositoryFacade combines all post-related repository interfaces
type PostRepositoryFacade interface {
	PostReader
	PostWriter
}
