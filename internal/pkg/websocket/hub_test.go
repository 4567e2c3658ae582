package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient() *Client {
	return &Client{
		send:   make(chan []byte, 10),
		userID: 42,
	}
}

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	client := newTestClient()
	hub.register <- client

	msg := &Message{
		Type:      "text",
		SenderID:  42,
		Content:   "hello room",
		Timestamp: time.Now(),
		ID:        7,
	}
	hub.Broadcast(msg)

	select {
	case got := <-client.send:
		var decoded Message
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("broadcast frame is not valid JSON: %v", err)
		}
		if decoded.Content != msg.Content || decoded.ID != msg.ID {
			t.Fatalf("got %+v, want content=%q id=%d", decoded, msg.Content, msg.ID)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for broadcast frame")
	}

	hub.unregister <- client

	select {
	case _, open := <-client.send:
		if open {
			t.Fatal("expected send channel to be closed after unregister")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for send channel close")
	}
}

func TestHubInboundReachesListeners(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	listener := make(chan *Message, 1)
	hub.AddListener(listener)

	inbound := &Message{Type: "text", SenderID: 1, Content: "persist me"}
	hub.inbound <- inbound

	select {
	case got := <-listener:
		if got.Content != "persist me" {
			t.Fatalf("listener got %q, want %q", got.Content, "persist me")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for inbound message")
	}

	hub.RemoveListener(listener)

	hub.inbound <- &Message{Type: "text", Content: "after removal"}
	select {
	case got := <-listener:
		t.Fatalf("removed listener still received %q", got.Content)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubSlowClientDoesNotBlockOthers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Stop()

	slow := &Client{send: make(chan []byte), userID: 1} // no buffer, never read
	fast := newTestClient()
	hub.register <- slow
	hub.register <- fast

	hub.Broadcast(&Message{Type: "text", Content: "first"})
	hub.Broadcast(&Message{Type: "text", Content: "second"})

	received := 0
	deadline := time.After(1 * time.Second)
	for received < 2 {
		select {
		case <-fast.send:
			received++
		case <-deadline:
			t.Fatalf("fast client received %d frames, want 2", received)
		}
	}
}
