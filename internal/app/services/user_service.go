package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

// UserService defines the interface for admin user management
type UserService interface {
	GetUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetUserByID(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, actorID, userID int64, role models.RoleType) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, actorID, userID int64, active bool) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUsers returns a filtered, paginated listing of accounts
func (s *userServiceImpl) GetUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	params := repositories.GetAllUsersParams{
		Page: filter.Page,
		Size: filter.PageSize,
	}
	if filter.RoleType != "" {
		role := models.RoleType(filter.RoleType)
		params.RoleType = &role
	}
	if filter.Branch != "" {
		params.Branch = &filter.Branch
	}
	if filter.Search != "" {
		params.Search = &filter.Search
	}

	users, pagination, err := s.userRepo.GetAllUsers(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Pagination: pagination,
	}, nil
}

// GetUserByID returns one account
func (s *userServiceImpl) GetUserByID(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateUserRole changes an account's role. Admins cannot change their
// own role, which keeps the system from losing its last administrator
// by accident.
func (s *userServiceImpl) UpdateUserRole(ctx context.Context, actorID, userID int64, role models.RoleType) (*dto.UserResponse, error) {
	if actorID == userID {
		return nil, apperrors.NewForbiddenError("you cannot change your own role")
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("roleType", "unknown role")
	}

	if err := s.userRepo.UpdateUserRole(ctx, userID, role); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", userID).
		Str("role", string(role)).
		Msg("User role updated")

	return s.GetUserByID(ctx, userID)
}

// SetUserActive enables or disables an account
func (s *userServiceImpl) SetUserActive(ctx context.Context, actorID, userID int64, active bool) (*dto.UserResponse, error) {
	if actorID == userID {
		return nil, apperrors.NewForbiddenError("you cannot change your own account status")
	}

	if err := s.userRepo.SetUserActive(ctx, userID, active); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("actorID", actorID).
		Int64("userID", userID).
		Bool("active", active).
		Msg("User account status updated")

	return s.GetUserByID(ctx, userID)
}

// DeleteUser removes an account
func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return apperrors.NewForbiddenError("you cannot delete your own account")
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("actorID", actorID).Int64("userID", userID).Msg("User deleted")
	return nil
}
