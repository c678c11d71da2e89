package domain

import "time"

// MediaUpload is image data attached to a publish request.
type MediaUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreatePostCommand is the orchestrator input.
type CreatePostCommand struct {
	UserID         string
	Content        string
	Link           *string
	MediaURL       *string
	Image          *MediaUpload
	Platforms      []string
	ScheduledAt    *time.Time
	FacebookPageID *string
}

// PublishContent is what each platform publisher receives.
type PublishContent struct {
	Text           string
	Link           *string
	Image          *MediaUpload
	FacebookPageID *string
}

// PlatformError is one platform's failure inside a multi-platform operation.
type PlatformError struct {
	Platform Platform `json:"platform"`
	Message  string   `json:"message"`
}

// PublishResult aggregates the per-platform outcome of one createPost call.
type PublishResult struct {
	Created []Post          `json:"created"`
	Errors  []PlatformError `json:"errors"`
}

// Failed reports whether nothing was created while at least one platform errored.
func (r PublishResult) Failed() bool {
	return len(r.Created) == 0 && len(r.Errors) > 0
}
