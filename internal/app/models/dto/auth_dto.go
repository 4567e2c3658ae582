package dto

import "time"

// RegisterRequest represents the payload for account registration.
// Every self-registered account starts as a student; teacher and admin
// roles are assigned through user management.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100" example:"Priya Sharma"`
	Email           string `json:"email" binding:"required,email" example:"student@college.edu"`
	Phone           string `json:"phone" binding:"required,min=7,max=15" example:"9876543210"`
	Password        string `json:"password" binding:"required,min=8" example:"s3cretPass!"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password" example:"s3cretPass!"`
	Branch          string `json:"branch" binding:"required" example:"Computer Science"`
	RollNo          string `json:"rollNo" binding:"omitempty,max=20" example:"CS2001"`
}

// LoginRequest represents the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@college.edu"`
	Password string `json:"password" binding:"required" example:"s3cretPass!"`
}

// RefreshTokenRequest represents the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`        // seconds
	RefreshExpiresIn int          `json:"refreshExpiresIn"` // seconds
	User             UserResponse `json:"user"`
}

// ForgotPasswordRequest starts the password recovery flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password recovery flow. UserID and
// Secret come from the recovery link's query parameters.
type ResetPasswordRequest struct {
	UserID          int64  `json:"userId" binding:"required"`
	Secret          string `json:"secret" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	RoleType    string     `json:"roleType"`
	Branch      string     `json:"branch"`
	RollNo      *string    `json:"rollNo,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}
