package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	explorerclient "github.com/GregMSThompson/chain-assistant/internal/client/explorer"
	geminiclient "github.com/GregMSThompson/chain-assistant/internal/client/gemini"
	vertexclient "github.com/GregMSThompson/chain-assistant/internal/client/vertex"
	"github.com/GregMSThompson/chain-assistant/internal/config"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

// AIClient is satisfied by both provider clients.
type AIClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Bootstrap struct {
	Log      *slog.Logger
	Explorer *explorerclient.Client
	AI       AIClient

	closers []func() error
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	bs.Explorer = explorerclient.NewClient(cfg.ExplorerBaseURL, httpClient)
	bs.Log.Info("explorer configured", "base_url", cfg.ExplorerBaseURL, "rpc_url", cfg.RPCURL)

	switch cfg.AIProvider {
	case config.ProviderVertex:
		if cfg.ProjectID == "" {
			bs.Log.Warn("vertex provider selected without PROJECT_ID; queries will fail until it is set")
			return bs, nil
		}
		adapter, err := vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
		if err != nil {
			return bs, err
		}
		bs.AI = adapter
		bs.closers = append(bs.closers, adapter.Close)

	default:
		if cfg.GeminiAPIKey == "" && cfg.GeminiKeySecret != "" {
			cfg.GeminiAPIKey, err = ResolveSecret(ctx, cfg.GeminiKeySecret)
			if err != nil {
				return bs, err
			}
		}
		if !cfg.HasCredential() {
			bs.Log.Warn("gemini API key missing or placeholder; queries will fail until it is set")
		}
		bs.AI = geminiclient.NewClient(cfg.GeminiEndpoint, cfg.GeminiAPIKey, httpClient)
	}

	return bs, nil
}

func (bs *Bootstrap) Close() error {
	var errs []error
	for _, c := range bs.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
