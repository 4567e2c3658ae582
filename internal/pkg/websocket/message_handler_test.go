package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func waitForListenerCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(1 * time.Second)
	for time.Now().Before(deadline) {
		hub.listenersMu.RLock()
		n := len(hub.listeners)
		hub.listenersMu.RUnlock()
		if n == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("listener count did not reach %d", want)
}

func TestMessageHandlerStopsWithHub(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	handler := NewMessageHandler(nil, nil, hub, zerolog.Nop())
	handler.Start()

	waitForListenerCount(t, hub, 1)

	hub.Stop()

	// The processing goroutine must notice the stop and deregister
	// itself instead of blocking forever on the listener channel.
	waitForListenerCount(t, hub, 0)
}
