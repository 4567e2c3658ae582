package dto

import (
	"time"

	"github.com/studysphere/backend/internal/app/models"
)

// GetChatMessagesRequest holds query filters for the message history.
// Results are always ordered by ascending server timestamp.
type GetChatMessagesRequest struct {
	Before *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit  int        `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
}

// CreateChatMessageRequest is the payload for a text message
type CreateChatMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// ChatMessageResponse is the API view of one chat message
type ChatMessageResponse struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"senderId"`
	SenderName  string    `json:"senderName,omitempty"`
	SenderRole  string    `json:"senderRole,omitempty"`
	MessageType string    `json:"messageType"`
	Content     string    `json:"content"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToChatMessageResponse converts a model to its API view
func ToChatMessageResponse(m *models.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		MessageType: string(m.MessageType),
		Content:     m.Content,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.Name
		resp.SenderRole = string(m.Sender.RoleType)
	}
	return resp
}
