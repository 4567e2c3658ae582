package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/app/repositories"
	"github.com/studysphere/backend/internal/pkg/apperrors"
	"github.com/studysphere/backend/internal/pkg/filestorage"
	"github.com/studysphere/backend/internal/pkg/websocket"
)

// allowed image extensions for chat uploads
var chatImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ChatService defines the interface for the shared chat room
type ChatService interface {
	GetChatMessages(ctx context.Context, filter *dto.GetChatMessagesRequest) ([]dto.ChatMessageResponse, error)
	SendTextMessage(ctx context.Context, senderID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error)
	SendImageMessage(ctx context.Context, senderID int64, caption string, image *multipart.FileHeader) (*dto.ChatMessageResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo    *repositories.ChatRepository
	userRepo    *repositories.UserRepository
	fileStorage filestorage.FileStorage
	broadcaster *websocket.MessageHandler
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	broadcaster *websocket.MessageHandler,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetChatMessages returns a window of room history in ascending
// server-timestamp order.
func (s *chatServiceImpl) GetChatMessages(ctx context.Context, filter *dto.GetChatMessagesRequest) ([]dto.ChatMessageResponse, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	messages, err := s.chatRepo.GetMessages(ctx, filter.Before, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.ToChatMessageResponse(message))
	}

	return responses, nil
}

// SendTextMessage persists a text message and fans it out to connected
// clients after the insert succeeds.
func (s *chatServiceImpl) SendTextMessage(ctx context.Context, senderID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("content", "message content cannot be empty")
	}

	message := &models.ChatMessage{
		SenderID:    senderID,
		MessageType: models.ChatMessageTypeText,
		Content:     req.Content,
	}

	if _, err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return s.finishSend(ctx, message)
}

// SendImageMessage stores the image first and writes the message row only
// after the upload succeeds, so no message ever points at a missing file.
func (s *chatServiceImpl) SendImageMessage(ctx context.Context, senderID int64, caption string, image *multipart.FileHeader) (*dto.ChatMessageResponse, error) {
	if image == nil {
		return nil, apperrors.NewValidationError("image", "an image file is required")
	}

	ext := strings.ToLower(filepath.Ext(image.Filename))
	if !chatImageExtensions[ext] {
		return nil, apperrors.NewValidationError("image", "unsupported image format")
	}

	storedPath, err := s.fileStorage.SaveFileWithPath(image, "chat")
	if err != nil {
		s.logger.Error().Err(err).Str("filename", image.Filename).Msg("Failed to store chat image")
		return nil, fmt.Errorf("error storing chat image: %w", err)
	}

	message := &models.ChatMessage{
		SenderID:    senderID,
		MessageType: models.ChatMessageTypeImage,
		Content:     caption,
		ImageURL:    &storedPath,
	}

	if _, err := s.chatRepo.Create(ctx, message); err != nil {
		// Roll back the orphaned upload.
		if delErr := s.fileStorage.DeleteFile(storedPath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", storedPath).Msg("Failed to remove orphaned chat image")
		}
		return nil, err
	}

	return s.finishSend(ctx, message)
}

func (s *chatServiceImpl) finishSend(ctx context.Context, message *models.ChatMessage) (*dto.ChatMessageResponse, error) {
	if sender, err := s.userRepo.GetUserByID(ctx, message.SenderID); err == nil {
		message.Sender = sender
	} else {
		s.logger.Warn().Err(err).Int64("senderID", message.SenderID).Msg("Failed to load sender for chat message")
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastStored(message)
	}

	resp := dto.ToChatMessageResponse(message)
	return &resp, nil
}
