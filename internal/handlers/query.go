package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/chain-assistant/internal/dto"
	"github.com/GregMSThompson/chain-assistant/internal/errs"
	"github.com/GregMSThompson/chain-assistant/internal/response"
)

const maxRequestBytes = 64 << 10

type AssistantService interface {
	Ask(ctx context.Context, query string) (dto.QueryResponse, error)
}

type queryHandlers struct {
	ResponseHandler response.ResponseHandler
	AssistantSvc    AssistantService
}

func NewQueryHandlers(deps *Deps) *queryHandlers {
	return &queryHandlers{
		ResponseHandler: deps.ResponseHandler,
		AssistantSvc:    deps.AssistantSvc,
	}
}

func (h *queryHandlers) QueryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/query", h.Query)
	return r
}

func (h *queryHandlers) Query(w http.ResponseWriter, r *http.Request) {
	var body dto.QueryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("query is required"))
		return
	}

	resp, err := h.AssistantSvc.Ask(r.Context(), body.Query)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *queryHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
