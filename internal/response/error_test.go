package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/chain-assistant/internal/errs"
	"github.com/GregMSThompson/chain-assistant/pkg/helpers"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

func newTestRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	return req.WithContext(helpers.TestCtx())
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHandleErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "validation",
			err:     errs.NewValidationError("query is required"),
			status:  http.StatusBadRequest,
			code:    "invalid_input",
			message: "query is required",
		},
		{
			name:    "configuration",
			err:     errs.NewConfigurationError("AI credential is not configured", "set GEMINI_API_KEY"),
			status:  http.StatusInternalServerError,
			code:    "configuration_error",
			message: "set GEMINI_API_KEY",
		},
		{
			name:    "upstream wrapped",
			err:     fmt.Errorf("generate answer: %w", errs.NewUpstreamStatusError("gemini", 429)),
			status:  http.StatusBadGateway,
			code:    "upstream_error",
			message: "429",
		},
		{
			name:    "unexpected",
			err:     errors.New("disk on fire"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "disk on fire",
		},
	}

	h := New(logger.New("info", logger.NewTestHandler))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.HandleError(rr, newTestRequest(), tc.err)

			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			body := decodeError(t, rr)
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
			if !strings.Contains(body.Error, tc.message) {
				t.Fatalf("error %q does not contain %q", body.Error, tc.message)
			}
		})
	}
}

func TestWriteSuccessEncodesData(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, newTestRequest(), http.StatusOK, map[string]string{"answer": "42"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["answer"] != "42" {
		t.Fatalf("body = %v", body)
	}
}
