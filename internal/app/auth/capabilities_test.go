package auth

import (
	"testing"

	"github.com/studysphere/backend/internal/app/models"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name       string
		role       models.RoleType
		capability Capability
		want       bool
	}{
		{name: "student views resources", role: models.RoleStudent, capability: CapViewResources, want: true},
		{name: "student engages resources", role: models.RoleStudent, capability: CapEngageResources, want: true},
		{name: "student uses chat", role: models.RoleStudent, capability: CapUseChat, want: true},
		{name: "student uses assistant", role: models.RoleStudent, capability: CapUseAssistant, want: true},
		{name: "student cannot upload", role: models.RoleStudent, capability: CapUploadResources, want: false},
		{name: "student cannot post announcements", role: models.RoleStudent, capability: CapPostAnnouncements, want: false},
		{name: "student cannot manage users", role: models.RoleStudent, capability: CapManageUsers, want: false},
		{name: "teacher uploads resources", role: models.RoleTeacher, capability: CapUploadResources, want: true},
		{name: "teacher cannot manage users", role: models.RoleTeacher, capability: CapManageUsers, want: false},
		{name: "teacher cannot post announcements", role: models.RoleTeacher, capability: CapPostAnnouncements, want: false},
		{name: "admin manages users", role: models.RoleAdmin, capability: CapManageUsers, want: true},
		{name: "admin posts announcements", role: models.RoleAdmin, capability: CapPostAnnouncements, want: true},
		{name: "admin manages resources", role: models.RoleAdmin, capability: CapManageResources, want: true},
		{name: "unknown role holds nothing", role: models.RoleType("GHOST"), capability: CapViewResources, want: false},
		{name: "empty role holds nothing", role: models.RoleType(""), capability: CapUseChat, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.capability); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.capability, got, tt.want)
			}
		})
	}
}

func TestEveryRoleHoldsStudentBaseline(t *testing.T) {
	baseline := []Capability{CapViewResources, CapEngageResources, CapViewAnnouncements, CapUseChat, CapUseAssistant}

	for _, role := range []models.RoleType{models.RoleStudent, models.RoleTeacher, models.RoleAdmin} {
		for _, capability := range baseline {
			if !Allowed(role, capability) {
				t.Errorf("role %q is missing baseline capability %q", role, capability)
			}
		}
	}
}
