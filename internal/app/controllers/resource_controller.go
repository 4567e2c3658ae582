package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/services"
	"github.com/studysphere/backend/internal/middleware"
)

// ResourceController handles study material endpoints
type ResourceController struct {
	resourceService   services.ResourceService
	engagementService services.EngagementService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, engagementService services.EngagementService) *ResourceController {
	return &ResourceController{
		resourceService:   resourceService,
		engagementService: engagementService,
	}
}

// GetResources godoc
// @Summary List study materials
// @Description Returns a filtered, paginated listing. Equality filters match exactly; search matches title or description case-insensitively.
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param type query string false "Resource type" Enums(NOTE, SYLLABUS, VIDEO, PYQ)
// @Param branch query string false "Branch"
// @Param year query int false "Year"
// @Param semester query int false "Semester"
// @Param subject query string false "Subject"
// @Param search query string false "Substring to match in title or description"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ResourceListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources [get]
func (c *ResourceController) GetResources(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var filter dto.ResourceFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	listing, err := c.resourceService.GetResources(ctx.Request.Context(), userID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listing))
}

// GetResource godoc
// @Summary Get one study material
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid resource ID"),
		})
		return
	}

	resource, err := c.resourceService.GetResourceByID(ctx.Request.Context(), resourceID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// CreateResource godoc
// @Summary Upload a new study material
// @Description Multipart form. Notes, syllabi and PYQs upload a "file" part; videos post a fileUrl instead. An optional "thumbnail" part is stored alongside.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param type formData string true "Resource type" Enums(NOTE, SYLLABUS, VIDEO, PYQ)
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param branch formData string true "Branch"
// @Param year formData int true "Year"
// @Param semester formData int true "Semester"
// @Param subject formData string true "Subject"
// @Param fileUrl formData string false "Video URL (VIDEO type only)"
// @Param file formData file false "The material file"
// @Param thumbnail formData file false "Optional thumbnail image"
// @Success 201 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}
	thumbnail, err := ctx.FormFile("thumbnail")
	if err != nil {
		thumbnail = nil
	}

	resource, err := c.resourceService.CreateResource(ctx.Request.Context(), userID, &req, file, thumbnail)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// UpdateResource godoc
// @Summary Edit a study material's metadata
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Updated metadata"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail} "Not the uploader or an admin"
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid resource ID"),
		})
		return
	}

	var req dto.UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	resource, err := c.resourceService.UpdateResource(ctx.Request.Context(), resourceID, userID, currentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// DeleteResource godoc
// @Summary Delete a study material
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid resource ID"),
		})
		return
	}

	if err := c.resourceService.DeleteResource(ctx.Request.Context(), resourceID, userID, currentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource deleted"}))
}

// Engage godoc
// @Summary Record an engagement action on a resource
// @Description LIKE and BOOKMARK toggle; VIEW and DOWNLOAD are recorded once per user.
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param kind path string true "Engagement kind" Enums(LIKE, BOOKMARK, VIEW, DOWNLOAD)
// @Success 200 {object} dto.APIResponse{data=dto.EngagementResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /resources/{id}/engagements/{kind} [post]
func (c *ResourceController) Engage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid resource ID"),
		})
		return
	}

	kind := models.EngagementKind(strings.ToUpper(ctx.Param("kind")))

	result, err := c.engagementService.Engage(ctx.Request.Context(), resourceID, userID, kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
