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
	"github.com/studysphere/backend/internal/pkg/helpers"
	"github.com/studysphere/backend/internal/pkg/logger"
)

// GetAnnouncementsParams holds filter and pagination parameters for the
// announcement feed. Branch limits the feed to notices visible to that
// branch (its own plus audience "all"); nil returns everything.
type GetAnnouncementsParams struct {
	Branch   *string
	Priority *models.AnnouncementPriority
	Page     int
	Size     int
}

// AnnouncementRepository handles database operations for announcements.
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AnnouncementRepository) selectAnnouncementQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.title", "a.content", "a.audience", "a.priority",
		"a.created_by", "a.created_at", "a.updated_at",
		"u.id", "u.name", "u.role_type",
	).From("announcements a").
		Join("users u ON a.created_by = u.id")
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var ann models.Announcement
	var author models.User
	err := row.Scan(
		&ann.ID, &ann.Title, &ann.Content, &ann.Audience, &ann.Priority,
		&ann.CreatedBy, &ann.CreatedAt, &ann.UpdatedAt,
		&author.ID, &author.Name, &author.RoleType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error scanning announcement row: %w", err)
	}
	ann.Author = &author
	return &ann, nil
}

// CreateAnnouncement inserts a new announcement and sets its generated ID.
func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, ann *models.Announcement) error {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content", "audience", "priority", "created_by").
		Values(ann.Title, ann.Content, ann.Audience, ann.Priority, ann.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create announcement SQL")
		return fmt.Errorf("failed to build create announcement query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&ann.ID, &ann.CreatedAt, &ann.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", ann.Title).Msg("Error executing create announcement query")
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}

// GetAnnouncementByID retrieves a single announcement with its author.
func (r *AnnouncementRepository) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	sqlStr, args, err := r.selectAnnouncementQuery().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get announcement by ID SQL")
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	return scanAnnouncement(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetAnnouncements retrieves a filtered, paginated feed ordered high
// priority first, then newest first.
func (r *AnnouncementRepository) GetAnnouncements(ctx context.Context, params GetAnnouncementsParams) ([]*models.Announcement, dto.PaginationInfo, error) {
	sqlBuilder := r.selectAnnouncementQuery()
	countBuilder := r.sb.Select("count(*)").From("announcements a")

	if params.Branch != nil {
		cond := squirrel.Or{
			squirrel.Eq{"a.audience": models.AudienceAll},
			squirrel.Eq{"a.audience": *params.Branch},
		}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}
	if params.Priority != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"a.priority": *params.Priority})
		countBuilder = countBuilder.Where(squirrel.Eq{"a.priority": *params.Priority})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count announcements SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count announcements query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*models.Announcement{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlBuilder = sqlBuilder.
		OrderBy("CASE a.priority WHEN 'HIGH' THEN 0 WHEN 'NORMAL' THEN 1 ELSE 2 END", "a.created_at DESC").
		Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get announcements SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get announcements query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	announcements := make([]*models.Announcement, 0)
	for rows.Next() {
		ann, err := scanAnnouncement(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning announcement during list")
			continue
		}
		announcements = append(announcements, ann)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating announcement rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return announcements, pagination, nil
}

// UpdateAnnouncement updates an existing announcement.
func (r *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, ann *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		Set("title", ann.Title).
		Set("content", ann.Content).
		Set("audience", ann.Audience).
		Set("priority", ann.Priority).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": ann.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update announcement SQL")
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", ann.ID).Msg("Error executing update announcement query")
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}

// DeleteAnnouncement removes an announcement by ID.
func (r *AnnouncementRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete announcement SQL")
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error executing delete announcement query")
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}

	return nil
}
