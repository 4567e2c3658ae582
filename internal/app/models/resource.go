package models

import "time"

// Resource represents one study material (note, syllabus, video or PYQ)
// in the database. Engagement counters are never stored on this row; they
// are derived from resource_engagements so a user counts at most once per
// kind.
type Resource struct {
	ID           int64        `db:"id" json:"id"`
	Type         ResourceType `db:"resource_type" json:"type"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	Branch       string       `db:"branch" json:"branch"`
	Year         int          `db:"year" json:"year"`
	Semester     int          `db:"semester" json:"semester"`
	Subject      string       `db:"subject" json:"subject"`
	FileURL      string       `db:"file_url" json:"fileUrl"`
	ThumbnailURL *string      `db:"thumbnail_url" json:"thumbnailUrl,omitempty"` // Pointer to handle NULL
	UploaderID   int64        `db:"uploader_id" json:"uploaderId"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// EngagementCounts holds the derived counters for one resource.
type EngagementCounts struct {
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
	Views     int64 `json:"views"`
	Downloads int64 `json:"downloads"`
}

// UserEngagement holds the calling user's own flags for one resource.
type UserEngagement struct {
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
	Viewed     bool `json:"viewed"`
	Downloaded bool `json:"downloaded"`
}
