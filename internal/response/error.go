package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/chain-assistant/internal/errs"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		valErr *errs.ValidationError
		cfgErr *errs.ConfigurationError
		extErr *errs.ExternalServiceError
	)

	switch {
	case errors.As(err, &valErr):
		log.Warn("validation failed", "error", valErr.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", valErr.Message)

	case errors.As(err, &cfgErr):
		log.Error("service misconfigured", "error", cfgErr.Message, "hint", cfgErr.Hint)
		h.WriteError(w, r, http.StatusInternalServerError, "configuration_error", cfgErr.Error())

	case errors.As(err, &extErr):
		level := slog.LevelError
		if extErr.Transient {
			level = slog.LevelWarn
		}
		log.Log(r.Context(), level, "external service error",
			"service", extErr.Service,
			"status", extErr.StatusCode,
			"transient", extErr.Transient,
			"error", extErr.Message)

		h.WriteError(w, r, http.StatusBadGateway, "upstream_error", extErr.Message)

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			fmt.Sprintf("internal error: %v", err))
	}
}
