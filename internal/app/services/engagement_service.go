package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

// EngagementService defines the interface for per-user engagement actions
type EngagementService interface {
	Engage(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (*dto.EngagementResponse, error)
}

// engagementStore is the slice of the engagement repository this service
// needs.
type engagementStore interface {
	AddEngagement(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error)
	RemoveEngagement(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (bool, error)
	CountByKind(ctx context.Context, resourceID int64, kind models.EngagementKind) (int64, error)
}

// resourceFinder resolves resource existence before an engagement is
// recorded.
type resourceFinder interface {
	GetResourceByID(ctx context.Context, id int64) (*repositories.ResourceDetails, error)
}

// engagementServiceImpl implements EngagementService
type engagementServiceImpl struct {
	engagements engagementStore
	resources   resourceFinder
	logger      zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(engagements engagementStore, resources resourceFinder, logger zerolog.Logger) EngagementService {
	return &engagementServiceImpl{
		engagements: engagements,
		resources:   resources,
		logger:      logger,
	}
}

// Engage applies one engagement action for the user. Likes and bookmarks
// toggle: present becomes absent and vice versa. Views and downloads
// record at most once and never un-record, so repeating the action is a
// no-op rather than an extra count.
func (s *engagementServiceImpl) Engage(ctx context.Context, resourceID, userID int64, kind models.EngagementKind) (*dto.EngagementResponse, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("kind", "unknown engagement kind")
	}

	if _, err := s.resources.GetResourceByID(ctx, resourceID); err != nil {
		return nil, err
	}

	active := true
	added, err := s.engagements.AddEngagement(ctx, resourceID, userID, kind)
	if err != nil {
		return nil, err
	}

	if !added && kind.Toggleable() {
		if _, err := s.engagements.RemoveEngagement(ctx, resourceID, userID, kind); err != nil {
			return nil, err
		}
		active = false
	}

	count, err := s.engagements.CountByKind(ctx, resourceID, kind)
	if err != nil {
		return nil, err
	}

	return &dto.EngagementResponse{
		Kind:   string(kind),
		Active: active,
		Count:  count,
	}, nil
}
