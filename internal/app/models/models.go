package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTeacher RoleType = "TEACHER"
	RoleAdmin   RoleType = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// ResourceType distinguishes the four kinds of study material
type ResourceType string

const (
	ResourceNote     ResourceType = "NOTE"
	ResourceSyllabus ResourceType = "SYLLABUS"
	ResourceVideo    ResourceType = "VIDEO"
	ResourcePYQ      ResourceType = "PYQ" // previous-year question paper
)

// Valid reports whether the resource type is known.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceNote, ResourceSyllabus, ResourceVideo, ResourcePYQ:
		return true
	}
	return false
}

// EngagementKind identifies a per-user engagement action on a resource
type EngagementKind string

const (
	EngagementLike     EngagementKind = "LIKE"
	EngagementBookmark EngagementKind = "BOOKMARK"
	EngagementView     EngagementKind = "VIEW"
	EngagementDownload EngagementKind = "DOWNLOAD"
)

// Valid reports whether the engagement kind is known.
func (k EngagementKind) Valid() bool {
	switch k {
	case EngagementLike, EngagementBookmark, EngagementView, EngagementDownload:
		return true
	}
	return false
}

// Toggleable reports whether the kind flips on repeat (like/bookmark)
// as opposed to recording at most once (view/download).
func (k EngagementKind) Toggleable() bool {
	return k == EngagementLike || k == EngagementBookmark
}

// AnnouncementPriority orders announcements in the feed
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "LOW"
	PriorityNormal AnnouncementPriority = "NORMAL"
	PriorityHigh   AnnouncementPriority = "HIGH"
)

// Valid reports whether the priority is known.
func (p AnnouncementPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// AudienceAll targets an announcement at every branch.
const AudienceAll = "all"
