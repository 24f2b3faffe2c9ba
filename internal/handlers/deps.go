package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/chain-assistant/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	AssistantSvc    AssistantService
	CORSOrigins     []string
}
