package models

import "testing"

func TestEngagementKindToggleable(t *testing.T) {
	tests := []struct {
		kind EngagementKind
		want bool
	}{
		{EngagementLike, true},
		{EngagementBookmark, true},
		{EngagementView, false},
		{EngagementDownload, false},
	}

	for _, tt := range tests {
		if got := tt.kind.Toggleable(); got != tt.want {
			t.Errorf("%s.Toggleable() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestEngagementKindValid(t *testing.T) {
	for _, kind := range []EngagementKind{EngagementLike, EngagementBookmark, EngagementView, EngagementDownload} {
		if !kind.Valid() {
			t.Errorf("%s.Valid() = false, want true", kind)
		}
	}
	if EngagementKind("SHARE").Valid() {
		t.Error(`EngagementKind("SHARE").Valid() = true, want false`)
	}
}
