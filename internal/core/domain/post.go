package domain

import "time"

// PostStatus is the lifecycle state of a stored post.
type PostStatus string

const (
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusScheduled PostStatus = "SCHEDULED"
)

// Post is a record of content published (or scheduled) on one platform.
type Post struct {
	PostID         string     `json:"id"`
	UserID         string     `json:"userId"`
	Content        string     `json:"content"`
	MediaURL       *string    `json:"mediaUrl,omitempty"`
	Status         PostStatus `json:"status"`
	Platform       Platform   `json:"platform"`
	PlatformPostID *string    `json:"platformId,omitempty"`
	PublishedAt    time.Time  `json:"publishedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}
