package models

import "time"

type Post struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Caption     string     `db:"caption" json:"caption"`
	Hashtags    string     `db:"hashtags" json:"hashtags,omitempty"`
	Platform    string     `db:"platform" json:"platform"`
	FolderID    *string    `db:"folder_id" json:"folderId"`
	ImagePrompt string     `db:"image_prompt" json:"imagePrompt,omitempty"`
	ImageURL    string     `db:"image_url" json:"imageUrl,omitempty"`
	Status      string     `db:"status" json:"status"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduledAt"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

const (
	PlatformAll       = "all"
	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"
	PlatformLinkedin  = "linkedin"
)
