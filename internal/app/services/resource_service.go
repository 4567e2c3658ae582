package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
	"github.com/studysphere/backend/internal/pkg/cache"
	"github.com/studysphere/backend/internal/pkg/filestorage"
)

const resourceCachePrefix = "resources:list:"

// ResourceService defines the interface for study material operations
type ResourceService interface {
	GetResources(ctx context.Context, userID int64, filter *dto.ResourceFilterRequest) (*dto.ResourceListResponse, error)
	GetResourceByID(ctx context.Context, resourceID, userID int64) (*dto.ResourceResponse, error)
	CreateResource(ctx context.Context, uploaderID int64, req *dto.CreateResourceRequest, file, thumbnail *multipart.FileHeader) (*dto.ResourceResponse, error)
	UpdateResource(ctx context.Context, resourceID, userID int64, role models.RoleType, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, resourceID, userID int64, role models.RoleType) error
}

// resourceServiceImpl implements ResourceService
type resourceServiceImpl struct {
	resourceRepo   *repositories.ResourceRepository
	engagementRepo *repositories.EngagementRepository
	fileStorage    filestorage.FileStorage
	listCache      *cache.Cache
	logger         zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resourceRepo *repositories.ResourceRepository,
	engagementRepo *repositories.EngagementRepository,
	fileStorage filestorage.FileStorage,
	listCache *cache.Cache,
	logger zerolog.Logger,
) ResourceService {
	return &resourceServiceImpl{
		resourceRepo:   resourceRepo,
		engagementRepo: engagementRepo,
		fileStorage:    fileStorage,
		listCache:      listCache,
		logger:         logger,
	}
}

// cachedResourcePage is the cache entry for one filter/page combination.
// User-specific flags are never cached; they are attached per request.
type cachedResourcePage struct {
	Items      []*repositories.ResourceDetails `json:"items"`
	Pagination dto.PaginationInfo              `json:"pagination"`
}

// GetResources returns a filtered, paginated listing decorated with the
// calling user's own engagement flags.
func (s *resourceServiceImpl) GetResources(ctx context.Context, userID int64, filter *dto.ResourceFilterRequest) (*dto.ResourceListResponse, error) {
	params := repositories.GetAllResourcesParams{
		Page: filter.Page,
		Size: filter.PageSize,
	}
	if filter.Type != "" {
		t := models.ResourceType(filter.Type)
		params.Type = &t
	}
	if filter.Branch != "" {
		params.Branch = &filter.Branch
	}
	if filter.Year != 0 {
		params.Year = &filter.Year
	}
	if filter.Semester != 0 {
		params.Semester = &filter.Semester
	}
	if filter.Subject != "" {
		params.Subject = &filter.Subject
	}
	if filter.Search != "" {
		params.Search = &filter.Search
	}

	key := fmt.Sprintf("%s%s|%s|%d|%d|%s|%s|p%d|s%d",
		resourceCachePrefix, filter.Type, filter.Branch, filter.Year,
		filter.Semester, filter.Subject, filter.Search, filter.Page, filter.PageSize)

	var page cachedResourcePage
	if err := s.listCache.GetJSON(ctx, key, &page); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Resource cache lookup failed")
		}
		items, pagination, err := s.resourceRepo.GetAllResources(ctx, params)
		if err != nil {
			return nil, err
		}
		page = cachedResourcePage{Items: items, Pagination: pagination}
		s.listCache.SetJSON(ctx, key, page)
	}

	ids := make([]int64, 0, len(page.Items))
	for _, item := range page.Items {
		ids = append(ids, item.ID)
	}
	flags, err := s.engagementRepo.GetUserEngagementsForResources(ctx, ids, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to load user engagement flags for listing")
		flags = map[int64]models.UserEngagement{}
	}

	responses := make([]dto.ResourceResponse, 0, len(page.Items))
	for _, item := range page.Items {
		resp := toResourceResponse(item)
		if mine, ok := flags[item.ID]; ok {
			resp.Mine = &mine
		}
		responses = append(responses, resp)
	}

	return &dto.ResourceListResponse{
		Resources:  responses,
		Pagination: page.Pagination,
	}, nil
}

// GetResourceByID returns one resource with counters and the user's flags
func (s *resourceServiceImpl) GetResourceByID(ctx context.Context, resourceID, userID int64) (*dto.ResourceResponse, error) {
	details, err := s.resourceRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	resp := toResourceResponse(details)
	mine, err := s.engagementRepo.GetUserEngagement(ctx, resourceID, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("resourceID", resourceID).Msg("Failed to load user engagement flags")
	} else {
		resp.Mine = &mine
	}

	return &resp, nil
}

// CreateResource stores the uploaded file (or the posted URL for videos)
// and inserts the resource row.
func (s *resourceServiceImpl) CreateResource(ctx context.Context, uploaderID int64, req *dto.CreateResourceRequest, file, thumbnail *multipart.FileHeader) (*dto.ResourceResponse, error) {
	resourceType := models.ResourceType(req.Type)

	var fileURL string
	switch {
	case resourceType == models.ResourceVideo:
		if req.FileURL == "" {
			return nil, apperrors.NewValidationError("fileUrl", "video resources require a URL")
		}
		fileURL = req.FileURL
	case file != nil:
		storedPath, err := s.fileStorage.SaveFileWithPath(file, "resources")
		if err != nil {
			s.logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store resource file")
			return nil, fmt.Errorf("error storing file: %w", err)
		}
		fileURL = storedPath
	default:
		return nil, apperrors.NewValidationError("file", "a file upload is required for this resource type")
	}

	resource := &models.Resource{
		Type:        resourceType,
		Title:       req.Title,
		Description: req.Description,
		Branch:      req.Branch,
		Year:        req.Year,
		Semester:    req.Semester,
		Subject:     req.Subject,
		FileURL:     fileURL,
		UploaderID:  uploaderID,
	}

	if thumbnail != nil {
		thumbPath, err := s.fileStorage.SaveFileWithPath(thumbnail, "thumbnails")
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", thumbnail.Filename).Msg("Failed to store thumbnail, continuing without it")
		} else {
			resource.ThumbnailURL = &thumbPath
		}
	}

	if err := s.resourceRepo.CreateResource(ctx, resource); err != nil {
		return nil, err
	}

	s.listCache.InvalidatePrefix(ctx, resourceCachePrefix)
	s.logger.Info().Int64("resourceID", resource.ID).Int64("uploaderID", uploaderID).Msg("Resource created")

	details, err := s.resourceRepo.GetResourceByID(ctx, resource.ID)
	if err != nil {
		return nil, err
	}
	resp := toResourceResponse(details)
	return &resp, nil
}

// UpdateResource edits resource metadata. Teachers may only edit their
// own uploads; admins may edit anything.
func (s *resourceServiceImpl) UpdateResource(ctx context.Context, resourceID, userID int64, role models.RoleType, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	details, err := s.resourceRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin && details.UploaderID != userID {
		return nil, apperrors.NewForbiddenError("only the uploader or an admin can edit this resource")
	}

	resource := details.Resource
	resource.Title = req.Title
	resource.Description = req.Description
	resource.Branch = req.Branch
	resource.Year = req.Year
	resource.Semester = req.Semester
	resource.Subject = req.Subject

	if err := s.resourceRepo.UpdateResource(ctx, &resource); err != nil {
		return nil, err
	}

	s.listCache.InvalidatePrefix(ctx, resourceCachePrefix)

	updated, err := s.resourceRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	resp := toResourceResponse(updated)
	return &resp, nil
}

// DeleteResource removes a resource and its stored file.
func (s *resourceServiceImpl) DeleteResource(ctx context.Context, resourceID, userID int64, role models.RoleType) error {
	details, err := s.resourceRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin && details.UploaderID != userID {
		return apperrors.NewForbiddenError("only the uploader or an admin can delete this resource")
	}

	if err := s.resourceRepo.DeleteResource(ctx, resourceID); err != nil {
		return err
	}

	// Videos are external links; everything else lives in local storage.
	if details.Type != models.ResourceVideo {
		if err := s.fileStorage.DeleteFile(details.FileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", details.FileURL).Msg("Failed to delete stored resource file")
		}
	}
	if details.ThumbnailURL != nil {
		if err := s.fileStorage.DeleteFile(*details.ThumbnailURL); err != nil {
			s.logger.Warn().Err(err).Str("thumbnailURL", *details.ThumbnailURL).Msg("Failed to delete stored thumbnail")
		}
	}

	s.listCache.InvalidatePrefix(ctx, resourceCachePrefix)
	s.logger.Info().Int64("resourceID", resourceID).Int64("userID", userID).Msg("Resource deleted")

	return nil
}

func toResourceResponse(details *repositories.ResourceDetails) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:           details.ID,
		Type:         string(details.Type),
		Title:        details.Title,
		Description:  details.Description,
		Branch:       details.Branch,
		Year:         details.Year,
		Semester:     details.Semester,
		Subject:      details.Subject,
		FileURL:      details.FileURL,
		ThumbnailURL: details.ThumbnailURL,
		UploaderID:   details.UploaderID,
		UploaderName: details.UploaderName,
		CreatedAt:    details.CreatedAt,
		UpdatedAt:    details.UpdatedAt,
		Stats:        details.Stats,
	}
}
