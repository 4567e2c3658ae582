package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studysphere/backend/internal/pkg/apperrors"
)

func TestGenerateReturnsFirstCandidate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Photosynthesis converts light into chemical energy."}},
				}},
			},
		})
	}))
	defer upstream.Close()

	client := NewClient(Config{BaseURL: upstream.URL, Model: "gemini-2.0-flash", APIKey: "k-123"})

	answer, err := client.Generate(context.Background(), "What is photosynthesis?")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if answer != "Photosynthesis converts light into chemical energy." {
		t.Errorf("Generate() = %q, unexpected answer", answer)
	}

	if gotPath != "/models/gemini-2.0-flash:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "k-123" {
		t.Errorf("api key = %q, want k-123", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 ||
		gotBody.Contents[0].Parts[0].Text != "What is photosynthesis?" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestGenerateEmptyPromptSkipsUpstream(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	client := NewClient(Config{BaseURL: upstream.URL, Model: "m", APIKey: "k"})

	if _, err := client.Generate(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if called {
		t.Error("upstream must not be called for an empty prompt")
	}
}

func TestGenerateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
			},
		},
		{
			name: "empty candidate list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			client := NewClient(Config{BaseURL: upstream.URL, Model: "m", APIKey: "k"})

			_, err := client.Generate(context.Background(), "question")
			if !errors.Is(err, apperrors.ErrAssistantUnavailable) {
				t.Errorf("Generate() error = %v, want ErrAssistantUnavailable", err)
			}
		})
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	// Grab a port that is immediately closed again.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	client := NewClient(Config{BaseURL: upstream.URL, Model: "m", APIKey: "k"})

	_, err := client.Generate(context.Background(), "question")
	if !errors.Is(err, apperrors.ErrAssistantUnavailable) {
		t.Errorf("Generate() error = %v, want ErrAssistantUnavailable", err)
	}
}
