package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/chain-assistant/internal/response"
	"github.com/GregMSThompson/chain-assistant/pkg/helpers"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

func TestRecovererWritesInternalError(t *testing.T) {
	rh := response.New(logger.New("info", logger.NewTestHandler))
	mw := NewRecovererMiddleware(rh)

	h := mw.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/query", nil).WithContext(helpers.TestCtx())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body response.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "internal_error" {
		t.Fatalf("code = %q", body.Code)
	}
}

func TestLoggerMiddlewareStoresLogger(t *testing.T) {
	base := logger.New("info", logger.NewTestHandler)
	mw := NewLoggerMiddleware(base)

	var stored bool
	h := chimiddleware.RequestID(mw.LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stored = logger.FromContext(r.Context()) != base
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if !stored {
		t.Fatalf("expected an enriched request logger in the context")
	}
}
