package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studysphere/backend/internal/app/models/dto"
	"github.com/studysphere/backend/internal/pkg/apperrors"
)

// maxPromptChars caps the combined study context and question before the
// upstream call.
const maxPromptChars = 64000

// AssistantService defines the interface for AI question answering
type AssistantService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

// generator is the upstream text-generation client
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// assistantServiceImpl implements AssistantService
type assistantServiceImpl struct {
	client generator
	logger zerolog.Logger
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(client generator, logger zerolog.Logger) AssistantService {
	return &assistantServiceImpl{
		client: client,
		logger: logger,
	}
}

// Ask forwards one question to the upstream model. Blank questions are
// rejected before any upstream request is made.
func (s *assistantServiceImpl) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperrors.NewValidationError("question", "question cannot be empty")
	}

	prompt := question
	if studyContext := strings.TrimSpace(req.Context); studyContext != "" {
		prompt = fmt.Sprintf("Use the following study material as context.\n\n%s\n\nQuestion: %s", studyContext, question)
	}

	if len(prompt) > maxPromptChars {
		return nil, apperrors.ErrPromptTooLarge
	}

	answer, err := s.client.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("Assistant upstream call failed")
		return nil, err
	}

	return &dto.AskResponse{Answer: answer}, nil
}
