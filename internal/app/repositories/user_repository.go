package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/pkg/apperrors"
	"github.com/studysphere/backend/internal/pkg/dberrors"
	"github.com/studysphere/backend/internal/pkg/helpers"
	"github.com/studysphere/backend/internal/pkg/logger"
)

// GetAllUsersParams holds filter and pagination parameters for user listing.
type GetAllUsersParams struct {
	RoleType *models.RoleType
	Branch   *string
	IsActive *bool
	Search   *string
	Page     int
	Size     int
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"id", "email", "password", "name", "phone", "role_type", "branch",
		"roll_no", "is_active", "created_at", "updated_at", "last_login_at",
	).From("users")
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.Phone,
		&user.RoleType, &user.Branch, &user.RollNo, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user row: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user and sets its generated ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "name", "phone", "role_type", "branch", "roll_no", "is_active").
		Values(user.Email, user.Password, user.Name, user.Phone, user.RoleType, user.Branch, user.RollNo, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_roll_no_key") {
			return apperrors.ErrRollNoExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	return scanUser(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	return scanUser(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetAllUsers retrieves a filtered, paginated list of users.
func (r *UserRepository) GetAllUsers(ctx context.Context, params GetAllUsersParams) ([]*models.User, dto.PaginationInfo, error) {
	sqlBuilder := r.selectUserQuery()
	countBuilder := r.sb.Select("count(*)").From("users")

	if params.RoleType != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"role_type": *params.RoleType})
		countBuilder = countBuilder.Where(squirrel.Eq{"role_type": *params.RoleType})
	}
	if params.Branch != nil && *params.Branch != "" {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"branch": *params.Branch})
		countBuilder = countBuilder.Where(squirrel.Eq{"branch": *params.Branch})
	}
	if params.IsActive != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"is_active": *params.IsActive})
		countBuilder = countBuilder.Where(squirrel.Eq{"is_active": *params.IsActive})
	}
	if params.Search != nil && *params.Search != "" {
		pattern := "%" + *params.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count users SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count users query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*models.User{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlBuilder = sqlBuilder.OrderBy("created_at DESC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all users SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all users query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user during list")
			continue
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating user rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return users, pagination, nil
}

// UpdateUserRole changes the role of a user.
func (r *UserRepository) UpdateUserRole(ctx context.Context, userID int64, role models.RoleType) error {
	sql, args, err := r.sb.Update("users").
		Set("role_type", role).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update user role SQL")
		return fmt.Errorf("failed to build update role query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update user role query")
		return fmt.Errorf("error updating user role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetUserActive toggles the is_active flag of a user.
func (r *UserRepository) SetUserActive(ctx context.Context, userID int64, active bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set user active SQL")
		return fmt.Errorf("failed to build set active query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing set user active query")
		return fmt.Errorf("error updating user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash of a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	return r.updatePassword(ctx, r.db, userID, hashedPassword)
}

// UpdatePasswordTx is the transactional variant, for callers that need the
// password change to commit together with other rows.
func (r *UserRepository) UpdatePasswordTx(ctx context.Context, tx pgx.Tx, userID int64, hashedPassword string) error {
	return r.updatePassword(ctx, tx, userID, hashedPassword)
}

func (r *UserRepository) updatePassword(ctx context.Context, q execer, userID int64, hashedPassword string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update password SQL")
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin records the time of a successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		// Non-fatal for the login flow; log and move on.
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update last login timestamp")
	}

	return nil
}

// DeleteUser removes a user account.
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete user SQL")
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing delete user query")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
