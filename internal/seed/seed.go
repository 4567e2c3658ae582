package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/studysphere/backend/internal/app/models"
	appRepos "github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/config"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

const (
	defaultAdminEmail = "admin@studysphere.app"
	// Overridable via ADMIN_PASSWORD; the default is for local development only.
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData ensures a default admin account exists so a fresh
// deployment can be administered immediately.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	_, err := userRepo.GetUserByEmail(ctx, defaultAdminEmail)
	if err == nil {
		lgr.Debug().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		return err
	}

	lgr.Info().Msg("Creating default admin user...")

	password := config.GetEnv("ADMIN_PASSWORD", defaultAdminPassword)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: string(hashedPassword),
		Name:     "System Administrator",
		RoleType: appModels.RoleAdmin,
		Branch:   "Administration",
		IsActive: true,
	}

	if err := userRepo.CreateUser(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return nil
}
