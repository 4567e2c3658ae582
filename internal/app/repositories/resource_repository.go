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

// ResourceDetails is a resource row together with its derived engagement
// counters.
type ResourceDetails struct {
	models.Resource
	UploaderName string
	Stats        models.EngagementCounts
}

// GetAllResourcesParams holds filter and pagination parameters for
// resource listing. Equality filters match exactly; Search matches
// case-insensitively against title and description.
type GetAllResourcesParams struct {
	Type     *models.ResourceType
	Branch   *string
	Year     *int
	Semester *int
	Subject  *string
	Search   *string
	Page     int
	Size     int
}

// ResourceRepository handles database operations for resources.
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Counters come from scalar subqueries over resource_engagements, so a
// user contributes at most one unit per kind no matter how many times
// the action was attempted.
func (r *ResourceRepository) selectResourceDetailsQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.resource_type", "r.title", "r.description", "r.branch",
		"r.year", "r.semester", "r.subject", "r.file_url", "r.thumbnail_url",
		"r.uploader_id", "u.name AS uploader_name", "r.created_at", "r.updated_at",
		"(SELECT count(*) FROM resource_engagements e WHERE e.resource_id = r.id AND e.kind = 'LIKE') AS likes",
		"(SELECT count(*) FROM resource_engagements e WHERE e.resource_id = r.id AND e.kind = 'BOOKMARK') AS bookmarks",
		"(SELECT count(*) FROM resource_engagements e WHERE e.resource_id = r.id AND e.kind = 'VIEW') AS views",
		"(SELECT count(*) FROM resource_engagements e WHERE e.resource_id = r.id AND e.kind = 'DOWNLOAD') AS downloads",
	).From("resources r").
		Join("users u ON r.uploader_id = u.id")
}

func scanResourceDetails(row pgx.Row) (*ResourceDetails, error) {
	var res ResourceDetails
	err := row.Scan(
		&res.ID, &res.Type, &res.Title, &res.Description, &res.Branch,
		&res.Year, &res.Semester, &res.Subject, &res.FileURL, &res.ThumbnailURL,
		&res.UploaderID, &res.UploaderName, &res.CreatedAt, &res.UpdatedAt,
		&res.Stats.Likes, &res.Stats.Bookmarks, &res.Stats.Views, &res.Stats.Downloads,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning resource row: %w", err)
	}
	return &res, nil
}

// CreateResource inserts a new resource and sets its generated ID.
func (r *ResourceRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	sql, args, err := r.sb.Insert("resources").
		Columns("resource_type", "title", "description", "branch", "year", "semester", "subject", "file_url", "thumbnail_url", "uploader_id").
		Values(resource.Type, resource.Title, resource.Description, resource.Branch, resource.Year,
			resource.Semester, resource.Subject, resource.FileURL, resource.ThumbnailURL, resource.UploaderID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return fmt.Errorf("failed to build create resource query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", resource.Title).Msg("Error executing create resource query")
		return fmt.Errorf("error creating resource: %w", err)
	}

	return nil
}

// GetResourceByID retrieves a single resource with its counters.
func (r *ResourceRepository) GetResourceByID(ctx context.Context, id int64) (*ResourceDetails, error) {
	sqlStr, args, err := r.selectResourceDetailsQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resource by ID SQL")
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	return scanResourceDetails(r.db.QueryRow(ctx, sqlStr, args...))
}

// applyResourceFilters adds the listing predicates to a select builder.
// Equality filters match exactly; only Search matches case-insensitively.
func applyResourceFilters(b squirrel.SelectBuilder, params GetAllResourcesParams) squirrel.SelectBuilder {
	if params.Type != nil {
		b = b.Where(squirrel.Eq{"r.resource_type": *params.Type})
	}
	if params.Branch != nil && *params.Branch != "" {
		b = b.Where(squirrel.Eq{"r.branch": *params.Branch})
	}
	if params.Year != nil {
		b = b.Where(squirrel.Eq{"r.year": *params.Year})
	}
	if params.Semester != nil {
		b = b.Where(squirrel.Eq{"r.semester": *params.Semester})
	}
	if params.Subject != nil && *params.Subject != "" {
		b = b.Where(squirrel.Eq{"r.subject": *params.Subject})
	}
	if params.Search != nil && *params.Search != "" {
		pattern := "%" + *params.Search + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"r.title": pattern},
			squirrel.ILike{"r.description": pattern},
		})
	}
	return b
}

// GetAllResources retrieves a filtered, paginated list of resources with
// their counters, newest first.
func (r *ResourceRepository) GetAllResources(ctx context.Context, params GetAllResourcesParams) ([]*ResourceDetails, dto.PaginationInfo, error) {
	sqlBuilder := applyResourceFilters(r.selectResourceDetailsQuery(), params)
	countBuilder := applyResourceFilters(r.sb.Select("count(*)").From("resources r"), params)

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count resources SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count resources query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*ResourceDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	sqlBuilder = sqlBuilder.OrderBy("r.created_at DESC").Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all resources SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all resources query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	resources := make([]*ResourceDetails, 0)
	for rows.Next() {
		res, err := scanResourceDetails(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning resource during list")
			continue
		}
		resources = append(resources, res)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating resource rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return resources, pagination, nil
}

// UpdateResource updates the metadata of an existing resource.
func (r *ResourceRepository) UpdateResource(ctx context.Context, resource *models.Resource) error {
	sql, args, err := r.sb.Update("resources").
		Set("resource_type", resource.Type).
		Set("title", resource.Title).
		Set("description", resource.Description).
		Set("branch", resource.Branch).
		Set("year", resource.Year).
		Set("semester", resource.Semester).
		Set("subject", resource.Subject).
		Set("file_url", resource.FileURL).
		Set("thumbnail_url", resource.ThumbnailURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": resource.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update resource SQL")
		return fmt.Errorf("failed to build update resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", resource.ID).Msg("Error executing update resource query")
		return fmt.Errorf("error updating resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// DeleteResource removes a resource. Engagement rows go with it via the
// ON DELETE CASCADE on resource_engagements.
func (r *ResourceRepository) DeleteResource(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete resource SQL")
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Error executing delete resource query")
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
