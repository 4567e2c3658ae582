package dto

import "time"

// CreateAnnouncementRequest is the admin payload for publishing a notice
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=200"`
	Content  string `json:"content" binding:"required,max=5000"`
	Audience string `json:"audience" binding:"required"` // branch name or "all"
	Priority string `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH"`
}

// UpdateAnnouncementRequest edits an existing notice
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=200"`
	Content  string `json:"content" binding:"required,max=5000"`
	Audience string `json:"audience" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH"`
}

// AnnouncementResponse is the API view of one announcement
type AnnouncementResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Audience   string    `json:"audience"`
	Priority   string    `json:"priority"`
	CreatedBy  int64     `json:"createdBy"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AnnouncementListResponse is the feed for one caller
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
}
