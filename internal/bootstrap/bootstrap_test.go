package bootstrap

import (
	"context"
	"testing"

	geminiclient "github.com/GregMSThompson/chain-assistant/internal/client/gemini"
	"github.com/GregMSThompson/chain-assistant/internal/config"
)

func TestSecretVersionName(t *testing.T) {
	cases := map[string]string{
		"projects/p/secrets/gemini":            "projects/p/secrets/gemini/versions/latest",
		"projects/p/secrets/gemini/":           "projects/p/secrets/gemini/versions/latest",
		"projects/p/secrets/gemini/versions/3": "projects/p/secrets/gemini/versions/3",
	}
	for in, want := range cases {
		if got := SecretVersionName(in); got != want {
			t.Fatalf("SecretVersionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunBuildsGeminiClientWithoutKey(t *testing.T) {
	cfg := &config.Config{
		LogLevel:        "error",
		AIProvider:      config.ProviderGemini,
		GeminiEndpoint:  "https://example.invalid/generate",
		ExplorerBaseURL: "https://explorer.invalid",
	}

	bs, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	defer bs.Close()

	if _, ok := bs.AI.(*geminiclient.Client); !ok {
		t.Fatalf("expected gemini client, got %T", bs.AI)
	}
	if bs.Explorer == nil {
		t.Fatalf("expected explorer client")
	}
}

func TestRunVertexWithoutProjectLeavesAIUnset(t *testing.T) {
	cfg := &config.Config{LogLevel: "error", AIProvider: config.ProviderVertex}

	bs, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if bs.AI != nil {
		t.Fatalf("expected no AI client, got %T", bs.AI)
	}
	if err := bs.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}
