package auth

import (
	"github.com/studysphere/backend/internal/app/models"
)

// Capability names one protected operation. Routes are guarded by
// capability, not by role name, so adding a role never means auditing
// every handler.
type Capability string

const (
	CapViewResources      Capability = "resources:view"
	CapUploadResources    Capability = "resources:upload"
	CapManageResources    Capability = "resources:manage"
	CapEngageResources    Capability = "resources:engage"
	CapViewAnnouncements  Capability = "announcements:view"
	CapPostAnnouncements  Capability = "announcements:post"
	CapUseChat            Capability = "chat:use"
	CapUseAssistant       Capability = "assistant:use"
	CapManageUsers        Capability = "users:manage"
)

// capability sets per role. Teachers hold everything a student does plus
// uploading; admins hold everything.
var roleCapabilities = map[models.RoleType]map[Capability]bool{
	models.RoleStudent: {
		CapViewResources:     true,
		CapEngageResources:   true,
		CapViewAnnouncements: true,
		CapUseChat:           true,
		CapUseAssistant:      true,
	},
	models.RoleTeacher: {
		CapViewResources:     true,
		CapEngageResources:   true,
		CapViewAnnouncements: true,
		CapUseChat:           true,
		CapUseAssistant:      true,
		CapUploadResources:   true,
	},
	models.RoleAdmin: {
		CapViewResources:     true,
		CapEngageResources:   true,
		CapViewAnnouncements: true,
		CapUseChat:           true,
		CapUseAssistant:      true,
		CapUploadResources:   true,
		CapManageResources:   true,
		CapPostAnnouncements: true,
		CapManageUsers:       true,
	},
}

// Allowed reports whether the role holds the capability. Unknown roles
// hold nothing.
func Allowed(role models.RoleType, capability Capability) bool {
	return roleCapabilities[role][capability]
}
