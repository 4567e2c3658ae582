package models

import "time"

// ChatMessageType represents the type of chat message
type ChatMessageType string

const (
	ChatMessageTypeText  ChatMessageType = "TEXT"
	ChatMessageTypeImage ChatMessageType = "IMAGE"
)

// ChatMessage represents a message in the shared community room.
// Messages are append-only and ordered by the server-assigned created_at.
type ChatMessage struct {
	ID          int64           `json:"id" db:"id"`
	SenderID    int64           `json:"senderId" db:"sender_id"`
	MessageType ChatMessageType `json:"messageType" db:"message_type"`
	Content     string          `json:"content" db:"content"`
	ImageURL    *string         `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
