package mapping

import (
	"github.com/SscSPs/social_dashboard/internal/core/domain"
	"github.com/SscSPs/social_dashboard/internal/models"
)

// ToModelPost converts a domain Post to a model Post
func ToModelPost(d domain.Post) models.Post {
	return models.Post{
		PostID:         d.PostID,
		UserID:         d.UserID,
		Content:        d.Content,
		MediaURL:       d.MediaURL,
		Status:         string(d.Status),
		Platform:       string(d.Platform),
		PlatformPostID: d.PlatformPostID,
		PublishedAt:    d.PublishedAt,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainPost converts a model Post to a domain Post
func ToDomainPost(m models.Post) domain.Post {
	return domain.Post{
		PostID:         m.PostID,
		UserID:         m.UserID,
		Content:        m.Content,
		MediaURL:       m.MediaURL,
		Status:         domain.PostStatus(m.Status),
		Platform:       domain.Platform(m.Platform),
		PlatformPostID: m.PlatformPostID,
		PublishedAt:    m.PublishedAt,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainPostSlice converts a slice of model Posts to domain Posts
func ToDomainPostSlice(ms []models.Post) []domain.Post {
	ds := make([]domain.Post, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPost(m)
	}
	return ds
}
