package transfer

import "time"

type PostCreation struct {
	Caption     string     `json:"caption"`
	Hashtags    string     `json:"hashtags"`
	Platform    string     `json:"platform"`
	FolderID    *string    `json:"folderId"`
	ImagePrompt string     `json:"imagePrompt"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// PostUpdate carries sparse updates: nil fields are left unchanged.
// ClearFolder detaches the post from its folder; it wins over FolderID.
type PostUpdate struct {
	Caption     *string    `json:"caption"`
	Hashtags    *string    `json:"hashtags"`
	Platform    *string    `json:"platform"`
	FolderID    *string    `json:"folderId"`
	ClearFolder bool       `json:"clearFolder"`
	ImagePrompt *string    `json:"imagePrompt"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      *string    `json:"status"`
}

type PostFilter struct {
	FolderID string
	Status   string
	Platform string
	Search   string
	Limit    int
	Offset   int
}

// IsZero reports whether no filter is set. Only the unfiltered post list
// is ever served from or written to the cache.
func (f PostFilter) IsZero() bool {
	return f == PostFilter{}
}

type PostSchedule struct {
	ScheduledAt time.Time `json:"scheduledAt"`
}

type PostMove struct {
	FolderID string `json:"folderId"`
}

type DashboardStats struct {
	TotalPosts     int `json:"totalPosts"`
	ScheduledPosts int `json:"scheduledPosts"`
	PublishedPosts int `json:"publishedPosts"`
	DraftPosts     int `json:"draftPosts"`
	TotalFolders   int `json:"totalFolders"`
}
