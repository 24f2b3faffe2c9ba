package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/chain-assistant/internal/bootstrap"
	"github.com/GregMSThompson/chain-assistant/internal/config"
	"github.com/GregMSThompson/chain-assistant/internal/handlers"
	"github.com/GregMSThompson/chain-assistant/internal/response"
	"github.com/GregMSThompson/chain-assistant/internal/router"
	"github.com/GregMSThompson/chain-assistant/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// config
	cfg, err := config.Load()
	exitOnError("config load failed", err, slog.Default())

	// bootstrap
	bs, err := bootstrap.Run(context.Background(), cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	asvc := services.NewAssistantService(bs.Explorer, bs.AI, cfg)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.AssistantSvc = asvc
	deps.CORSOrigins = cfg.CORSAllowedOrigins

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server listening", "port", cfg.Port, "provider", cfg.AIProvider)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
