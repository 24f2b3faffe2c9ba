// Command ask answers one query from the command line using the same flow as the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/GregMSThompson/chain-assistant/internal/bootstrap"
	"github.com/GregMSThompson/chain-assistant/internal/config"
	"github.com/GregMSThompson/chain-assistant/internal/errs"
	"github.com/GregMSThompson/chain-assistant/internal/services"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ask <address | transaction hash | question>")
		os.Exit(2)
	}
	query := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	// keep stdout for the answer
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "error"
	}

	ctx := context.Background()
	bs, err := bootstrap.Run(ctx, cfg)
	if err != nil {
		fail(err)
	}
	defer bs.Close()

	svc := services.NewAssistantService(bs.Explorer, bs.AI, cfg)
	resp, err := svc.Ask(logger.ToContext(ctx, bs.Log), query)
	if err != nil {
		bs.Close()
		fail(err)
	}
	fmt.Println(resp.Answer)
}

func fail(err error) {
	var cfgErr *errs.ConfigurationError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "configuration error: %s\n", cfgErr.Error())
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
