package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/pkg/logger"
)

// EngagementRepository manages the resource_engagements membership table.
// One row per (resource, user, kind); the unique constraint makes every
// operation idempotent, so counters derived from this table are exact
// even under concurrent requests.
type EngagementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// AddEngagement records that the user performed the given action on the
// resource. Returns true when a new row was written, false when it was
// already present.
func (r *EngagementRepository) AddEngagement(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error) {
	sql, args, err := r.sb.Insert("resource_engagements").
		Columns("resource_id", "user_id", "kind").
		Values(resourceID, userID, kind).
		Suffix("ON CONFLICT (resource_id, user_id, kind) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add engagement SQL")
		return false, fmt.Errorf("failed to build add engagement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Int64("resourceID", resourceID).
			Int64("userID", userID).
			Str("kind", string(kind)).
			Msg("Error executing add engagement query")
		return false, fmt.Errorf("error adding engagement: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// RemoveEngagement deletes the user's row for the given kind. Returns
// true when a row was actually removed.
func (r *EngagementRepository) RemoveEngagement(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error) {
	sql, args, err := r.sb.Delete("resource_engagements").
		Where(squirrel.Eq{"resource_id": resourceID, "user_id": userID, "kind": kind}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building remove engagement SQL")
		return false, fmt.Errorf("failed to build remove engagement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Int64("resourceID", resourceID).
			Int64("userID", userID).
			Str("kind", string(kind)).
			Msg("Error executing remove engagement query")
		return false, fmt.Errorf("error removing engagement: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// CountByKind returns the number of distinct users with the given kind
// on the resource.
func (r *EngagementRepository) CountByKind(ctx context.Context, resourceID int64, kind models.EngagementKind) (int64, error) {
	sql, args, err := r.sb.Select("count(*)").
		From("resource_engagements").
		Where(squirrel.Eq{"resource_id": resourceID, "kind": kind}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count engagement SQL")
		return 0, fmt.Errorf("failed to build count engagement query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Int64("resourceID", resourceID).Msg("Error executing count engagement query")
		return 0, fmt.Errorf("error counting engagements: %w", err)
	}

	return count, nil
}

// GetCounts returns all four counters for one resource in a single query.
func (r *EngagementRepository) GetCounts(ctx context.Context, resourceID int64) (models.EngagementCounts, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE kind = 'LIKE'),
			count(*) FILTER (WHERE kind = 'BOOKMARK'),
			count(*) FILTER (WHERE kind = 'VIEW'),
			count(*) FILTER (WHERE kind = 'DOWNLOAD')
		FROM resource_engagements
		WHERE resource_id = $1
	`

	var counts models.EngagementCounts
	err := r.db.QueryRow(ctx, query, resourceID).Scan(
		&counts.Likes, &counts.Bookmarks, &counts.Views, &counts.Downloads,
	)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", resourceID).Msg("Error executing get counts query")
		return models.EngagementCounts{}, fmt.Errorf("error counting engagements: %w", err)
	}

	return counts, nil
}

// GetUserEngagement returns the calling user's flags for one resource.
func (r *EngagementRepository) GetUserEngagement(ctx context.Context, resourceID, userID int64) (models.UserEngagement, error) {
	sql, args, err := r.sb.Select("kind").
		From("resource_engagements").
		Where(squirrel.Eq{"resource_id": resourceID, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user engagement SQL")
		return models.UserEngagement{}, fmt.Errorf("failed to build user engagement query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceID", resourceID).Int64("userID", userID).Msg("Error executing get user engagement query")
		return models.UserEngagement{}, fmt.Errorf("error retrieving user engagement: %w", err)
	}
	defer rows.Close()

	var engagement models.UserEngagement
	for rows.Next() {
		var kind models.EngagementKind
		if err := rows.Scan(&kind); err != nil {
			return models.UserEngagement{}, fmt.Errorf("error scanning engagement kind: %w", err)
		}
		switch kind {
		case models.EngagementLike:
			engagement.Liked = true
		case models.EngagementBookmark:
			engagement.Bookmarked = true
		case models.EngagementView:
			engagement.Viewed = true
		case models.EngagementDownload:
			engagement.Downloaded = true
		}
	}
	if err = rows.Err(); err != nil {
		return models.UserEngagement{}, fmt.Errorf("database iteration error: %w", err)
	}

	return engagement, nil
}

// GetUserEngagementsForResources returns the user's flags for a set of
// resources at once, keyed by resource ID. Used when decorating list
// responses so the page costs one query instead of one per row.
func (r *EngagementRepository) GetUserEngagementsForResources(ctx context.Context, resourceIDs []int64, userID int64) (map[int64]models.UserEngagement, error) {
	result := make(map[int64]models.UserEngagement, len(resourceIDs))
	if len(resourceIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("resource_id", "kind").
		From("resource_engagements").
		Where(squirrel.Eq{"resource_id": resourceIDs, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building batch user engagement SQL")
		return nil, fmt.Errorf("failed to build batch engagement query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing batch user engagement query")
		return nil, fmt.Errorf("error retrieving user engagements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resourceID int64
		var kind models.EngagementKind
		if err := rows.Scan(&resourceID, &kind); err != nil {
			return nil, fmt.Errorf("error scanning engagement row: %w", err)
		}
		engagement := result[resourceID]
		switch kind {
		case models.EngagementLike:
			engagement.Liked = true
		case models.EngagementBookmark:
			engagement.Bookmarked = true
		case models.EngagementView:
			engagement.Viewed = true
		case models.EngagementDownload:
			engagement.Downloaded = true
		}
		result[resourceID] = engagement
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return result, nil
}
