package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"student@college.edu", true},
		{"first.last+tag@sub.domain.org", true},
		{"no-at-sign.example.com", false},
		{"@missinglocal.com", false},
		{"spaces in@local.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsValidRollNo(t *testing.T) {
	tests := []struct {
		rollNo string
		want   bool
	}{
		{"CS2001", true},
		{"ece21045", true},
		{"C1", false},       // too few letters
		{"ABCDE123", false}, // too many letters
		{"CS", false},       // no digits
		{"1234", false},     // no letters
	}

	for _, tt := range tests {
		if got := IsValidRollNo(tt.rollNo); got != tt.want {
			t.Errorf("IsValidRollNo(%q) = %v, want %v", tt.rollNo, got, tt.want)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"12345", false},
		{"98-76-54", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidPhone(tt.phone); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"letters and digits", "Passw0rd", true},
		{"long mixed", "correct-horse-7", true},
		{"too short", "Pa5s", false},
		{"digits only", "12345678", false},
		{"letters only", "passwordless", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPassword(tt.password); got != tt.want {
				t.Errorf("IsValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
