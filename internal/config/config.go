package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AIProvider string

const (
	ProviderGemini AIProvider = "gemini"
	ProviderVertex AIProvider = "vertex"
)

type Config struct {
	Port     string `env:"PORT"      envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AIProvider      AIProvider `env:"AI_PROVIDER"           envDefault:"gemini"`
	GeminiAPIKey    string     `env:"GEMINI_API_KEY"`
	GeminiKeySecret string     `env:"GEMINI_API_KEY_SECRET"`
	GeminiEndpoint  string     `env:"GEMINI_ENDPOINT"       envDefault:"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"`

	ProjectID   string `env:"PROJECT_ID"`
	Region      string `env:"REGION"       envDefault:"us-central1"`
	VertexModel string `env:"VERTEX_MODEL" envDefault:"gemini-2.0-flash"`

	ExplorerBaseURL string `env:"EXPLORER_BASE_URL" envDefault:"https://solscan.io"`
	// RPCURL is carried for future on-chain lookups; the query flow does not call it.
	RPCURL string `env:"RPC_URL" envDefault:"https://api.mainnet-beta.solana.com"`

	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT"         envDefault:"0s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"   envSeparator:","`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.ExplorerBaseURL = strings.TrimRight(cfg.ExplorerBaseURL, "/")

	switch cfg.AIProvider {
	case ProviderGemini, ProviderVertex:
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.AIProvider)
	}
	return cfg, nil
}

var placeholderKeys = []string{
	"your_api_key",
	"your_api_key_here",
	"your_gemini_api_key",
	"changeme",
}

// IsPlaceholderKey reports whether key is a template value left in an env file.
func IsPlaceholderKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, p := range placeholderKeys {
		if k == p {
			return true
		}
	}
	return strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">")
}

// HasCredential reports whether the selected provider can be called.
func (c *Config) HasCredential() bool {
	if c.AIProvider == ProviderVertex {
		return c.ProjectID != ""
	}
	key := strings.TrimSpace(c.GeminiAPIKey)
	return key != "" && !IsPlaceholderKey(key)
}

// CredentialHint is the remediation text shown when HasCredential is false.
func (c *Config) CredentialHint() string {
	if c.AIProvider == ProviderVertex {
		return "set PROJECT_ID for the Vertex AI provider"
	}
	return "set GEMINI_API_KEY (or GEMINI_API_KEY_SECRET) to a valid Gemini API key"
}
