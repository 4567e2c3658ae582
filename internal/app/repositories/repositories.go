package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// execer is the write surface shared by the pool and an open transaction,
// letting a repository method run either standalone or inside a
// transaction the caller controls.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	ResourceRepository           *ResourceRepository
	EngagementRepository         *EngagementRepository
	AnnouncementRepository       *AnnouncementRepository
	ChatRepository               *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		ResourceRepository:           NewResourceRepository(db),
		EngagementRepository:         NewEngagementRepository(db),
		AnnouncementRepository:       NewAnnouncementRepository(db),
		ChatRepository:               NewChatRepository(db),
	}
}
