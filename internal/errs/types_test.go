package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigurationErrorIncludesHint(t *testing.T) {
	err := NewConfigurationError("AI credential is not configured", "set GEMINI_API_KEY")
	if got := err.Error(); got != "AI credential is not configured: set GEMINI_API_KEY" {
		t.Fatalf("unexpected message: %q", got)
	}

	noHint := NewConfigurationError("broken", "")
	if noHint.Error() != "broken" {
		t.Fatalf("unexpected message: %q", noHint.Error())
	}
}

func TestUpstreamStatusError(t *testing.T) {
	cases := []struct {
		status    int
		transient bool
	}{
		{status: 400, transient: false},
		{status: 429, transient: true},
		{status: 500, transient: false},
		{status: 503, transient: true},
	}

	for _, tc := range cases {
		err := NewUpstreamStatusError("gemini", tc.status)
		if err.Transient != tc.transient {
			t.Fatalf("status %d: transient = %v, want %v", tc.status, err.Transient, tc.transient)
		}
		if err.StatusCode != tc.status {
			t.Fatalf("status %d: StatusCode = %d", tc.status, err.StatusCode)
		}
		if !strings.Contains(err.Error(), "gemini") {
			t.Fatalf("message should name the service: %q", err.Error())
		}
	}
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewUpstreamError("vertex", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
	if err.StatusCode != 0 {
		t.Fatalf("expected zero status, got %d", err.StatusCode)
	}
}
