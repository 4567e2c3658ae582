package models

import "testing"

func TestAnnouncementVisibleTo(t *testing.T) {
	tests := []struct {
		name     string
		audience string
		branch   string
		want     bool
	}{
		{name: "all reaches every branch", audience: AudienceAll, branch: "Computer Science", want: true},
		{name: "matching branch", audience: "Computer Science", branch: "Computer Science", want: true},
		{name: "other branch", audience: "Mechanical", branch: "Computer Science", want: false},
		{name: "empty viewer branch never matches targeted notice", audience: "Mechanical", branch: "", want: false},
		{name: "all reaches empty branch", audience: AudienceAll, branch: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Announcement{Audience: tt.audience}
			if got := a.VisibleTo(tt.branch); got != tt.want {
				t.Errorf("VisibleTo(%q) with audience %q = %v, want %v", tt.branch, tt.audience, got, tt.want)
			}
		})
	}
}

