package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studysphere/backend/internal/pkg/apperrors"
)

// PasswordResetTokenRepository manages password reset secrets. A reset
// link carries the user ID and a random secret; the pair identifies the
// row, and each secret is good for exactly one reset.
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
	}
}

// CreateToken stores a new password reset secret for the user. Earlier
// unused secrets for the same user are removed first so only the latest
// link works.
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, secret string, expiryDate time.Time) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1 AND used = false`, userID); err != nil {
		return fmt.Errorf("error clearing previous reset tokens: %w", err)
	}

	query := `
		INSERT INTO password_reset_tokens (user_id, secret, expiry_date)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, userID, secret, expiryDate)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}

	return nil
}

// GetTokenInfo retrieves expiry and usage state for a user/secret pair
func (r *PasswordResetTokenRepository) GetTokenInfo(ctx context.Context, userID int64, secret string) (time.Time, bool, error) {
	query := `
		SELECT expiry_date, used
		FROM password_reset_tokens
		WHERE user_id = $1 AND secret = $2
	`

	var expiryDate time.Time
	var used bool

	err := r.db.QueryRow(ctx, query, userID, secret).Scan(&expiryDate, &used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, apperrors.ErrInvalidPasswordResetToken
		}
		return time.Time{}, false, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	return expiryDate, used, nil
}

// MarkTokenAsUsed marks a secret as consumed to prevent reuse
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, userID int64, secret string) error {
	return r.markTokenAsUsed(ctx, r.db, userID, secret)
}

// MarkTokenAsUsedTx is the transactional variant, for consuming the secret
// in the same transaction as the password change it authorizes.
func (r *PasswordResetTokenRepository) MarkTokenAsUsedTx(ctx context.Context, tx pgx.Tx, userID int64, secret string) error {
	return r.markTokenAsUsed(ctx, tx, userID, secret)
}

func (r *PasswordResetTokenRepository) markTokenAsUsed(ctx context.Context, q execer, userID int64, secret string) error {
	query := `
		UPDATE password_reset_tokens
		SET used = true
		WHERE user_id = $1 AND secret = $2 AND used = false
	`

	result, err := q.Exec(ctx, query, userID, secret)
	if err != nil {
		return fmt.Errorf("error marking token as used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidPasswordResetToken
	}

	return nil
}

// DeleteExpiredTokens removes all expired secrets
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := `
		DELETE FROM password_reset_tokens
		WHERE expiry_date < $1
	`

	_, err := r.db.Exec(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}

	return nil
}
