package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
	"github.com/studysphere/backend/internal/pkg/auth"
	"github.com/studysphere/backend/internal/pkg/email"
	"github.com/studysphere/backend/internal/pkg/validation"
)

const passwordResetTokenTTL = time.Hour

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

// TxRunner runs a function inside a single database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	db             TxRunner
	userRepo       *repositories.UserRepository
	tokenRepo      *repositories.TokenRepository
	resetTokenRepo *repositories.PasswordResetTokenRepository
	jwtService     *auth.JWTService
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	db TxRunner,
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	resetTokenRepo *repositories.PasswordResetTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		db:             db,
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		resetTokenRepo: resetTokenRepo,
		jwtService:     jwtService,
		emailService:   emailService,
		logger:         logger,
	}
}

// Register creates a new student account and logs it in. Teacher and
// admin roles are never self-assigned; they are granted through user
// management afterwards.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("email", "invalid email format")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("password", "password must be at least 8 characters and contain a letter and a digit")
	}
	if !validation.IsValidPhone(req.Phone) {
		return nil, apperrors.NewValidationError("phone", "invalid phone number")
	}
	if req.RollNo != "" && !validation.IsValidRollNo(req.RollNo) {
		return nil, apperrors.NewValidationError("rollNo", "invalid roll number format")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Phone:    req.Phone,
		RoleType: models.RoleStudent,
		Branch:   req.Branch,
		IsActive: true,
	}
	if req.RollNo != "" {
		user.RollNo = &req.RollNo
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrRollNoExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")

	return s.issueTokens(ctx, user)
}

// Login authenticates a user with email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password so the response doesn't
			// reveal which accounts exist.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The used token is revoked, so each refresh token works exactly once.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke rotated refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return err
	}
	return nil
}

// GetProfile returns the public view of the authenticated user
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ForgotPassword starts the recovery flow. The response never reveals
// whether the email is registered.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	secret := uuid.New().String()
	expiry := time.Now().Add(passwordResetTokenTTL)

	if err := s.resetTokenRepo.CreateToken(ctx, user.ID, secret, expiry); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store password reset token")
		return fmt.Errorf("error creating reset token: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, user.ID, secret); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("error sending reset email: %w", err)
	}

	return nil
}

// ResetPassword completes the recovery flow. The confirmation check runs
// before the secret is looked up, so a mismatch never consumes the
// single-use token.
func (s *authServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.NewValidationError("confirmPassword", "passwords do not match")
	}
	if !validation.IsValidPassword(req.NewPassword) {
		return apperrors.NewValidationError("newPassword", "password must be at least 8 characters and contain a letter and a digit")
	}

	expiry, used, err := s.resetTokenRepo.GetTokenInfo(ctx, req.UserID, req.Secret)
	if err != nil {
		return err
	}
	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(expiry) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash new password")
		return fmt.Errorf("error hashing password: %w", err)
	}

	// The password change and the secret consumption commit together, so
	// a failure can never leave a spent secret next to the old password.
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.UpdatePasswordTx(ctx, tx, req.UserID, hashedPassword); err != nil {
			return err
		}
		return s.resetTokenRepo.MarkTokenAsUsedTx(ctx, tx, req.UserID, req.Secret)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", req.UserID).Msg("Failed to complete password reset")
		return err
	}

	// Old sessions die with the old password.
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, req.UserID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", req.UserID).Msg("Failed to revoke user refresh tokens after reset")
	}

	s.logger.Info().Int64("userID", req.UserID).Msg("Password reset completed")
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token pair")
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             ToUserResponse(user),
	}, nil
}

// ToUserResponse converts a user model to its public API view.
func ToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		RoleType:    string(user.RoleType),
		Branch:      user.Branch,
		RollNo:      user.RollNo,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
