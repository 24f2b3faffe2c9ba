package vertexclient

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/chain-assistant/internal/errs"
)

const (
	serviceName = "vertex"

	NoResponseFallback = "No legible response from AI"
)

// textGenerator is the slice of *genai.GenerativeModel the adapter uses.
type textGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Adapter struct {
	client *genai.Client
	model  textGenerator
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	if model == "" {
		return nil, fmt.Errorf("vertex model is required")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("create vertex client: %w", err)
	}

	return &Adapter{
		client: client,
		model:  client.GenerativeModel(model),
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// Generate sends prompt as a single user turn and returns the first candidate's text.
func (a *Adapter) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errs.NewUpstreamError(serviceName, err)
	}
	return firstText(resp), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return NoResponseFallback
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return NoResponseFallback
	}
	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return NoResponseFallback
	}
	return string(text)
}
