package models

import "time"

// Announcement represents an admin-published notice targeted at one branch
// or at everyone (audience = "all").
type Announcement struct {
	ID        int64                `db:"id" json:"id"`
	Title     string               `db:"title" json:"title"`
	Content   string               `db:"content" json:"content"`
	Audience  string               `db:"audience" json:"audience"` // branch name or "all"
	Priority  AnnouncementPriority `db:"priority" json:"priority"`
	CreatedBy int64                `db:"created_by" json:"createdBy"`
	CreatedAt time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time            `db:"updated_at" json:"updatedAt"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// VisibleTo reports whether the announcement targets the given branch.
func (a *Announcement) VisibleTo(branch string) bool {
	return a.Audience == AudienceAll || a.Audience == branch
}
