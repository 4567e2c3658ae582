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
	"github.com/studysphere/backend/internal/pkg/apperrors"
	"github.com/studysphere/backend/internal/pkg/logger"
)

// ChatRepository handles database operations for the shared chat room.
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new chat message and sets its server-assigned ID and
// timestamp on the model. The returned values define the message's
// position in history; callers must not broadcast before this succeeds.
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) (int64, error) {
	sql, args, err := r.sb.Insert("chat_messages").
		Columns("sender_id", "message_type", "content", "image_url").
		Values(message.SenderID, message.MessageType, message.Content, message.ImageURL).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create chat message SQL")
		return 0, fmt.Errorf("failed to build create chat message query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("senderID", message.SenderID).Msg("Error executing create chat message query")
		return 0, fmt.Errorf("error creating chat message: %w", err)
	}

	return message.ID, nil
}

// GetMessageByID retrieves a single message with its sender.
func (r *ChatRepository) GetMessageByID(ctx context.Context, id int64) (*models.ChatMessage, error) {
	sqlStr, args, err := r.selectMessageQuery().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get chat message SQL")
		return nil, fmt.Errorf("failed to build get chat message query: %w", err)
	}

	return scanChatMessage(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetMessages returns up to limit messages older than before (or the
// newest ones when before is nil), in ascending created_at order so the
// client can render them top to bottom.
func (r *ChatRepository) GetMessages(ctx context.Context, before *time.Time, limit int) ([]*models.ChatMessage, error) {
	sqlStr, args, err := r.buildMessagesQuery(before, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Error building get chat messages SQL")
		return nil, fmt.Errorf("failed to build get chat messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get chat messages query")
		return nil, fmt.Errorf("error retrieving chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.ChatMessage, 0)
	for rows.Next() {
		message, err := scanChatMessage(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning chat message during list")
			continue
		}
		messages = append(messages, message)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating chat message rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	// Reverse in place into ascending order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// buildMessagesQuery fetches the window newest-first so the limit applies
// to the most recent messages; GetMessages reverses the rows back into
// chronological order.
func (r *ChatRepository) buildMessagesQuery(before *time.Time, limit int) (string, []interface{}, error) {
	sqlBuilder := r.selectMessageQuery().
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(uint64(limit))
	if before != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Lt{"m.created_at": *before})
	}
	return sqlBuilder.ToSql()
}

func (r *ChatRepository) selectMessageQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"m.id", "m.sender_id", "m.message_type", "m.content", "m.image_url", "m.created_at",
		"u.id", "u.name", "u.role_type", "u.branch",
	).From("chat_messages m").
		Join("users u ON m.sender_id = u.id")
}

func scanChatMessage(row pgx.Row) (*models.ChatMessage, error) {
	var message models.ChatMessage
	var sender models.User
	err := row.Scan(
		&message.ID, &message.SenderID, &message.MessageType, &message.Content,
		&message.ImageURL, &message.CreatedAt,
		&sender.ID, &sender.Name, &sender.RoleType, &sender.Branch,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatMessageNotFound
		}
		return nil, fmt.Errorf("error scanning chat message row: %w", err)
	}
	message.Sender = &sender
	return &message, nil
}
