package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models"
	"github.com/studysphere/backend/internal/app/repositories"
)

// MessageHandler persists inbound WebSocket messages and re-broadcasts
// the stored row. Broadcasting only after the insert means every
// subscriber sees messages in the order of their server-assigned
// timestamps.
type MessageHandler struct {
	chatRepo *repositories.ChatRepository
	userRepo *repositories.UserRepository
	hub      *Hub
	logger   zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	chatRepo *repositories.ChatRepository,
	userRepo *repositories.UserRepository,
	hub *Hub,
	logger zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{
		chatRepo: chatRepo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
	}
}

// Start begins processing inbound messages from the hub
func (h *MessageHandler) Start() {
	go h.processMessages()
}

func (h *MessageHandler) processMessages() {
	messageChan := make(chan *Message, 64)
	h.hub.AddListener(messageChan)
	defer h.hub.RemoveListener(messageChan)

	for {
		select {
		case message := <-messageChan:
			// Image messages are created over HTTP (the upload must
			// complete before the row is written), so only text frames
			// arrive here.
			if message.Type == "text" {
				h.persistAndBroadcast(message)
			}
		case <-h.hub.done:
			return
		}
	}
}

func (h *MessageHandler) persistAndBroadcast(message *Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chatMessage := &models.ChatMessage{
		SenderID:    message.SenderID,
		MessageType: models.ChatMessageTypeText,
		Content:     message.Content,
	}

	if _, err := h.chatRepo.Create(ctx, chatMessage); err != nil {
		h.logger.Error().
			Err(err).
			Int64("senderID", message.SenderID).
			Msg("Failed to save WebSocket message")
		return
	}

	message.ID = chatMessage.ID
	message.Timestamp = chatMessage.CreatedAt

	if sender, err := h.userRepo.GetUserByID(ctx, message.SenderID); err == nil && sender != nil {
		message.SenderName = sender.Name
		message.SenderRole = string(sender.RoleType)
	}

	h.hub.Broadcast(message)
}

// BroadcastStored fans out a message that was already persisted over the
// HTTP API (text or image).
func (h *MessageHandler) BroadcastStored(m *models.ChatMessage) {
	out := &Message{
		Type:      "text",
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Timestamp: m.CreatedAt,
	}
	if m.MessageType == models.ChatMessageTypeImage {
		out.Type = "image"
		if m.ImageURL != nil {
			out.ImageURL = *m.ImageURL
		}
	}
	if m.Sender != nil {
		out.SenderName = m.Sender.Name
		out.SenderRole = string(m.Sender.RoleType)
	}

	h.hub.Broadcast(out)
}
