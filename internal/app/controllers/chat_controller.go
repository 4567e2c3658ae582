package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/services"
	"github.com/studysphere/backend/internal/middleware"
)

// ChatController handles the shared chat room's HTTP endpoints. The
// live stream itself runs over the WebSocket handler.
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// GetChatMessages godoc
// @Summary Get chat room history
// @Description Returns up to limit messages older than "before" (or the newest ones), in ascending server-timestamp order
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param before query string false "Fetch messages before this RFC3339 timestamp"
// @Param limit query int false "Maximum number of messages" default(50)
// @Success 200 {object} dto.APIResponse{data=[]dto.ChatMessageResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /chat/messages [get]
func (c *ChatController) GetChatMessages(ctx *gin.Context) {
	var filter dto.GetChatMessagesRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	messages, err := c.chatService.GetChatMessages(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// SendTextMessage godoc
// @Summary Send a text message
// @Description Persists the message, then broadcasts it to connected WebSocket clients
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatMessageRequest true "Message payload"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /chat/messages [post]
func (c *ChatController) SendTextMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	message, err := c.chatService.SendTextMessage(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// SendImageMessage godoc
// @Summary Send an image message
// @Description Uploads the image first; the message row is written only after the upload succeeds
// @Tags chat
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpg, png, gif or webp)"
// @Param caption formData string false "Optional caption"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /chat/messages/image [post]
func (c *ChatController) SendImageMessage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "An image file is required").WithField("image"),
		})
		return
	}

	caption := ctx.PostForm("caption")

	message, err := c.chatService.SendImageMessage(ctx.Request.Context(), userID, caption, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}
