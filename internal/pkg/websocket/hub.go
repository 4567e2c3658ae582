package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients in the shared campus room and
// broadcasts messages to them. Incoming client frames are not broadcast
// directly: they are handed to inbound listeners (the message handler),
// which persist them and re-broadcast the stored message so every
// subscriber sees the server-assigned id and timestamp.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Messages to fan out to every connected client
	broadcast chan *Message

	// Raw messages received from clients, pending persistence
	inbound chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closes the run loop
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for inbound listeners
	listenersMu sync.RWMutex

	// Inbound message listeners
	listeners []chan *Message

	logger zerolog.Logger
}

// Message represents a message sent over the chat WebSocket
type Message struct {
	// Type of message: "text" or "image"
	Type string `json:"type"`

	// User who sent the message
	SenderID int64 `json:"senderId"`

	// Display name and role of the sender, filled in server side
	SenderName string `json:"senderName,omitempty"`
	SenderRole string `json:"senderRole,omitempty"`

	// Message content
	Content string `json:"content"`

	// Public URL of the attached image, if any
	ImageURL string `json:"imageUrl,omitempty"`

	// Server-assigned timestamp
	Timestamp time.Time `json:"timestamp"`

	// Message ID from the database
	ID int64 `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message),
		inbound:    make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		listeners:  []chan *Message{},
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case message := <-h.inbound:
			h.notifyListeners(message)

		case <-h.done:
			return
		}
	}
}

// Stop terminates the run loop. Used in tests and during shutdown.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Int("clients", len(h.clients)).
		Msg("Chat client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Int("clients", len(h.clients)).
			Msg("Chat client unregistered")
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal message for broadcast")
		return
	}

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full; drop the frame rather than
			// stalling every other subscriber.
			h.logger.Warn().Int64("userID", client.userID).Msg("Dropped frame for slow chat client")
		}
	}
}

// notifyListeners hands an inbound client message to registered listeners.
func (h *Hub) notifyListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- message:
		default:
			h.logger.Warn().Msg("Skipped slow inbound listener")
		}
	}
}

// Broadcast fans a message out to every connected client.
func (h *Hub) Broadcast(message *Message) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// AddListener registers a channel that receives every inbound client
// message before it is broadcast.
func (h *Hub) AddListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a previously registered listener.
func (h *Hub) RemoveListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
