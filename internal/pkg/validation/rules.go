package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,6}$`

	// Roll number pattern - two to four letters followed by digits
	RollNoPattern = `^[A-Za-z]{2,4}\d{2,6}$`

	// Phone pattern - 7 to 15 digits, optional leading +
	PhonePattern = `^\+?\d{7,15}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email  *regexp.Regexp
	RollNo *regexp.Regexp
	Phone  *regexp.Regexp
}{
	Email:  regexp.MustCompile(EmailPattern),
	RollNo: regexp.MustCompile(RollNoPattern),
	Phone:  regexp.MustCompile(PhonePattern),
}

// IsValidEmail reports whether the email matches the accepted pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidRollNo reports whether the roll number matches the accepted
// pattern.
func IsValidRollNo(rollNo string) bool {
	return CompiledPatterns.RollNo.MatchString(rollNo)
}

// IsValidPhone reports whether the phone number matches the accepted
// pattern.
func IsValidPhone(phone string) bool {
	return CompiledPatterns.Phone.MatchString(phone)
}

// IsValidPassword reports whether the password meets the minimum length
// and contains at least one letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
