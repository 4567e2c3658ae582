package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"student@college.edu"`                          // User's email address
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	Name        string     `json:"name" db:"name" example:"Priya Sharma"`                                   // User's full name
	Phone       string     `json:"phone" db:"phone" example:"9876543210"`                                   // User's phone number
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role (STUDENT, TEACHER or ADMIN)
	Branch      string     `json:"branch" db:"branch" example:"Computer Science"`                           // Branch the user belongs to
	RollNo      *string    `json:"rollNo,omitempty" db:"roll_no" example:"CS2001"`                          // Roll number (students only, nullable)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}
