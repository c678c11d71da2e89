package models

import "time"

// Post is the posts table row.
type Post struct {
	PostID         string    `db:"post_id"`
	UserID         string    `db:"user_id"`
	Content        string    `db:"content"`
	MediaURL       *string   `db:"media_url"`
	Status         string    `db:"status"`
	Platform       string    `db:"platform"`
	PlatformPostID *string   `db:"platform_post_id"`
	PublishedAt    time.Time `db:"published_at"`
	CreatedAt      time.Time `db:"created_at"`
}
