package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/services"
	"github.com/studysphere/backend/internal/middleware"
)

// AssistantController handles AI question-answering endpoints
type AssistantController struct {
	assistantService services.AssistantService
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistantService services.AssistantService) *AssistantController {
	return &AssistantController{
		assistantService: assistantService,
	}
}

// Ask godoc
// @Summary Ask the study assistant a question
// @Description Forwards one question (optionally with study material as context) to the AI backend and returns the answer
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AskRequest true "Question payload"
// @Success 200 {object} dto.APIResponse{data=dto.AskResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail} "Empty question or oversized prompt"
// @Failure 429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure 502 {object} dto.APIResponse{error=dto.ErrorDetail} "Upstream unavailable"
// @Router /assistant/ask [post]
func (c *AssistantController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	answer, err := c.assistantService.Ask(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answer))
}
