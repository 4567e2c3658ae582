package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

type fakeGenerator struct {
	gotPrompt string
	answer    string
	err       error
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.gotPrompt = prompt
	return f.answer, f.err
}

func TestAskForwardsQuestion(t *testing.T) {
	gen := &fakeGenerator{answer: "42"}
	svc := NewAssistantService(gen, zerolog.Nop())

	resp, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "  What is the answer?  "})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer != "42" {
		t.Errorf("Answer = %q, want %q", resp.Answer, "42")
	}
	if gen.gotPrompt != "What is the answer?" {
		t.Errorf("prompt = %q, want trimmed question only", gen.gotPrompt)
	}
}

func TestAskPrependsStudyContext(t *testing.T) {
	gen := &fakeGenerator{answer: "ok"}
	svc := NewAssistantService(gen, zerolog.Nop())

	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question: "Summarize this.",
		Context:  "Chapter 3: Thermodynamics.",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if !strings.Contains(gen.gotPrompt, "Chapter 3: Thermodynamics.") {
		t.Errorf("prompt %q does not contain the study context", gen.gotPrompt)
	}
	if !strings.HasSuffix(gen.gotPrompt, "Question: Summarize this.") {
		t.Errorf("prompt %q does not end with the question", gen.gotPrompt)
	}
}

func TestAskBlankQuestionSkipsUpstream(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAssistantService(gen, zerolog.Nop())

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "   "})
	if err == nil {
		t.Fatal("expected error for blank question")
	}
	if gen.calls != 0 {
		t.Errorf("upstream called %d times for a blank question, want 0", gen.calls)
	}
}

func TestAskOversizedPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewAssistantService(gen, zerolog.Nop())

	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question: "short question",
		Context:  strings.Repeat("a", maxPromptChars),
	})
	if !errors.Is(err, apperrors.ErrPromptTooLarge) {
		t.Errorf("error = %v, want ErrPromptTooLarge", err)
	}
	if gen.calls != 0 {
		t.Errorf("upstream called %d times for an oversized prompt, want 0", gen.calls)
	}
}

func TestAskPropagatesUpstreamError(t *testing.T) {
	gen := &fakeGenerator{err: apperrors.ErrAssistantUnavailable}
	svc := NewAssistantService(gen, zerolog.Nop())

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "q"})
	if !errors.Is(err, apperrors.ErrAssistantUnavailable) {
		t.Errorf("error = %v, want ErrAssistantUnavailable", err)
	}
}
