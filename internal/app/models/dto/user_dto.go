package dto

// UpdateUserRoleRequest changes a user's role (admin only)
type UpdateUserRoleRequest struct {
	RoleType string `json:"roleType" binding:"required,oneof=STUDENT TEACHER ADMIN"`
}

// SetUserActiveRequest enables or disables an account (admin only).
// Pointer so that "false" survives the required check.
type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserFilterRequest holds query filters for the admin user listing
type UserFilterRequest struct {
	Branch   string `form:"branch"`
	RoleType string `form:"roleType" binding:"omitempty,oneof=STUDENT TEACHER ADMIN"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"size,default=10" binding:"omitempty,min=1,max=100"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
