package dto

import (
	"time"

	"github.com/studysphere/backend/internal/app/models"
)

// ResourceFilterRequest holds the query-string filters for resource
// listings. Equality filters are conjunctive and exact-match; Search is a
// case-insensitive substring match over title or description.
type ResourceFilterRequest struct {
	Type     string `form:"type" binding:"omitempty,oneof=NOTE SYLLABUS VIDEO PYQ"`
	Branch   string `form:"branch"`
	Year     int    `form:"year" binding:"omitempty,min=1,max=6"`
	Semester int    `form:"semester" binding:"omitempty,min=1,max=12"`
	Subject  string `form:"subject"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"size,default=10" binding:"omitempty,min=1,max=100"`
}

// CreateResourceRequest is bound from the multipart create form. The file
// itself travels as the "file" part, the thumbnail as "thumbnail".
type CreateResourceRequest struct {
	Type        string `form:"type" binding:"required,oneof=NOTE SYLLABUS VIDEO PYQ"`
	Title       string `form:"title" binding:"required,min=3,max=200"`
	Description string `form:"description" binding:"required,max=2000"`
	Branch      string `form:"branch" binding:"required"`
	Year        int    `form:"year" binding:"required,min=1,max=6"`
	Semester    int    `form:"semester" binding:"required,min=1,max=12"`
	Subject     string `form:"subject" binding:"required"`
	// Videos are linked, not uploaded; for them the URL is posted directly.
	FileURL string `form:"fileUrl" binding:"omitempty,url"`
}

// UpdateResourceRequest updates resource metadata; the stored file is
// untouched.
type UpdateResourceRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
	Branch      string `json:"branch" binding:"required"`
	Year        int    `json:"year" binding:"required,min=1,max=6"`
	Semester    int    `json:"semester" binding:"required,min=1,max=12"`
	Subject     string `json:"subject" binding:"required"`
}

// ResourceResponse is the API view of one resource, including derived
// engagement counters and the calling user's own engagement flags.
type ResourceResponse struct {
	ID           int64                   `json:"id"`
	Type         string                  `json:"type"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Branch       string                  `json:"branch"`
	Year         int                     `json:"year"`
	Semester     int                     `json:"semester"`
	Subject      string                  `json:"subject"`
	FileURL      string                  `json:"fileUrl"`
	ThumbnailURL *string                 `json:"thumbnailUrl,omitempty"`
	UploaderID   int64                   `json:"uploaderId"`
	UploaderName string                  `json:"uploaderName,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	Stats        models.EngagementCounts `json:"stats"`
	Mine         *models.UserEngagement  `json:"mine,omitempty"`
}

// ResourceListResponse is a paginated list of resources
type ResourceListResponse struct {
	Resources  []ResourceResponse `json:"resources"`
	Pagination PaginationInfo     `json:"pagination"`
}

// EngagementResponse reports the post-action state of one engagement kind.
// Active mirrors what the card should display (liked/bookmarked, or true
// for a recorded view/download), Count the derived counter.
type EngagementResponse struct {
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
	Count  int64  `json:"count"`
}
