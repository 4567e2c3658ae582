package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	GetAnnouncements(ctx context.Context, viewer *models.User, page, size int) (*dto.AnnouncementListResponse, error)
	GetAnnouncementByID(ctx context.Context, id int64, viewer *models.User) (*dto.AnnouncementResponse, error)
	CreateAnnouncement(ctx context.Context, authorID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcementRepo *repositories.AnnouncementRepository
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo *repositories.AnnouncementRepository, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// GetAnnouncements returns the feed for the viewer. Students and
// teachers see notices for their branch plus audience "all"; admins see
// everything.
func (s *announcementServiceImpl) GetAnnouncements(ctx context.Context, viewer *models.User, page, size int) (*dto.AnnouncementListResponse, error) {
	params := repositories.GetAnnouncementsParams{
		Page: page,
		Size: size,
	}
	if viewer.RoleType != models.RoleAdmin {
		params.Branch = &viewer.Branch
	}

	announcements, _, err := s.announcementRepo.GetAnnouncements(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, ann := range announcements {
		responses = append(responses, toAnnouncementResponse(ann))
	}

	return &dto.AnnouncementListResponse{Announcements: responses}, nil
}

// GetAnnouncementByID returns one announcement if the viewer may see it
func (s *announcementServiceImpl) GetAnnouncementByID(ctx context.Context, id int64, viewer *models.User) (*dto.AnnouncementResponse, error) {
	ann, err := s.announcementRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if viewer.RoleType != models.RoleAdmin && !ann.VisibleTo(viewer.Branch) {
		// Invisible notices read as absent, not as forbidden.
		return nil, apperrors.ErrAnnouncementNotFound
	}

	resp := toAnnouncementResponse(ann)
	return &resp, nil
}

// CreateAnnouncement publishes a new notice
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, authorID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	priority := models.AnnouncementPriority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityNormal
	}

	ann := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Audience:  req.Audience,
		Priority:  priority,
		CreatedBy: authorID,
	}

	if err := s.announcementRepo.CreateAnnouncement(ctx, ann); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("announcementID", ann.ID).
		Str("audience", ann.Audience).
		Msg("Announcement published")

	stored, err := s.announcementRepo.GetAnnouncementByID(ctx, ann.ID)
	if err != nil {
		return nil, err
	}
	resp := toAnnouncementResponse(stored)
	return &resp, nil
}

// UpdateAnnouncement edits an existing notice
func (s *announcementServiceImpl) UpdateAnnouncement(ctx context.Context, id int64, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	ann, err := s.announcementRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ann.Title = req.Title
	ann.Content = req.Content
	ann.Audience = req.Audience
	if req.Priority != "" {
		ann.Priority = models.AnnouncementPriority(req.Priority)
	}

	if err := s.announcementRepo.UpdateAnnouncement(ctx, ann); err != nil {
		return nil, err
	}

	updated, err := s.announcementRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAnnouncementResponse(updated)
	return &resp, nil
}

// DeleteAnnouncement removes a notice
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.announcementRepo.DeleteAnnouncement(ctx, id)
}

func toAnnouncementResponse(ann *models.Announcement) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:        ann.ID,
		Title:     ann.Title,
		Content:   ann.Content,
		Audience:  ann.Audience,
		Priority:  string(ann.Priority),
		CreatedBy: ann.CreatedBy,
		CreatedAt: ann.CreatedAt,
		UpdatedAt: ann.UpdatedAt,
	}
	if ann.Author != nil {
		resp.AuthorName = ann.Author.Name
	}
	return resp
}
