package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GregMSThompson/chain-assistant/internal/dto"
	"github.com/GregMSThompson/chain-assistant/internal/errs"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

const (
	// DefaultContext is sent to the model when no explorer lookup is made.
	DefaultContext = "No specific blockchain context needed."

	// queries longer than this are treated as an address or transaction id
	explorerMinLen = 30
)

type explorerClient interface {
	Summarize(ctx context.Context, id string) dto.ExplorerSummary
}

type aiClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Credentials reports whether the AI provider is usable.
type Credentials interface {
	HasCredential() bool
	CredentialHint() string
}

type assistantService struct {
	explorer explorerClient
	ai       aiClient
	creds    Credentials
}

func NewAssistantService(explorer explorerClient, ai aiClient, creds Credentials) *assistantService {
	return &assistantService{
		explorer: explorer,
		ai:       ai,
		creds:    creds,
	}
}

func BuildPrompt(contextText, query string) string {
	return fmt.Sprintf("Context: %s\nUser query: %s", contextText, query)
}

func (s *assistantService) Ask(ctx context.Context, query string) (dto.QueryResponse, error) {
	log := logger.FromContext(ctx)

	id := strings.TrimSpace(query)
	if id == "" {
		return dto.QueryResponse{}, errs.NewValidationError("query is required")
	}

	if s.ai == nil || s.creds == nil || !s.creds.HasCredential() {
		hint := "configure an AI provider"
		if s.creds != nil {
			hint = s.creds.CredentialHint()
		}
		return dto.QueryResponse{}, errs.NewConfigurationError("AI credential is not configured", hint)
	}

	contextText := DefaultContext
	if len(query) > explorerMinLen {
		summary := s.explorer.Summarize(ctx, id)
		contextText = summary.Text
		log.Info("explorer context resolved", "url", summary.URL, "ok", summary.OK)
	}

	prompt := BuildPrompt(contextText, query)
	if logger.IsDebugEnabled(ctx) {
		log.Debug("sending prompt", "prompt", prompt)
	}

	answer, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return dto.QueryResponse{}, fmt.Errorf("generate answer: %w", err)
	}

	log.Info("ai query completed", "answer_len", len(answer))
	return dto.QueryResponse{Answer: answer}, nil
}
