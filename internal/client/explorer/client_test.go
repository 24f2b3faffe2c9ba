package explorerclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/chain-assistant/pkg/helpers"
)

func TestResolveURLBoundary(t *testing.T) {
	c := NewClient("https://explorer.example/", nil)

	addr := strings.Repeat("a", 44)
	if got := c.ResolveURL(addr); got != "https://explorer.example/address/"+addr {
		t.Fatalf("44 chars should be an address, got %q", got)
	}

	tx := strings.Repeat("b", 45)
	if got := c.ResolveURL(tx); got != "https://explorer.example/tx/"+tx {
		t.Fatalf("45 chars should be a transaction, got %q", got)
	}
}

func TestResolveURLEscapesPath(t *testing.T) {
	c := NewClient("https://explorer.example", nil)
	if got := c.ResolveURL("a/b c"); got != "https://explorer.example/address/a%2Fb%20c" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestSummarizeSuccess(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Tx Details</title></head><body><p>Status: Success</p></body></html>`))
	}))
	defer srv.Close()

	id := strings.Repeat("5", 50)
	c := NewClient(srv.URL, srv.Client())
	summary := c.Summarize(helpers.TestCtx(), id)

	if gotPath != "/tx/"+id {
		t.Fatalf("explorer hit %q, want /tx/{id}", gotPath)
	}
	if gotUA == "" {
		t.Fatalf("expected a User-Agent header")
	}
	if !summary.OK || summary.Err != nil {
		t.Fatalf("expected success, got %+v", summary)
	}
	if summary.Text != "Parsed Tx Details: Status: Success..." {
		t.Fatalf("summary text = %q", summary.Text)
	}
}

func TestSummarizeTruncatesExcerpt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("x", 10000) + "</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	summary := c.Summarize(helpers.TestCtx(), "addr")

	want := "Parsed No title: " + strings.Repeat("x", 500) + "..."
	if summary.Text != want {
		t.Fatalf("unexpected summary length %d", len(summary.Text))
	}
}

func TestSummarizeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	id := strings.Repeat("9", 50)
	c := NewClient(srv.URL, srv.Client())
	summary := c.Summarize(helpers.TestCtx(), id)

	if summary.OK {
		t.Fatalf("expected failure")
	}
	if summary.Err == nil || !strings.Contains(summary.Err.Error(), "404") {
		t.Fatalf("expected status in error, got %v", summary.Err)
	}
	if summary.Text != "Error fetching explorer data for "+id+"." {
		t.Fatalf("fallback text = %q", summary.Text)
	}
}

func TestSummarizeNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base, nil)
	summary := c.Summarize(helpers.TestCtx(), "addr")

	if summary.OK || summary.Err == nil {
		t.Fatalf("expected failure, got %+v", summary)
	}
	if summary.Text != "Error fetching explorer data for addr." {
		t.Fatalf("fallback text = %q", summary.Text)
	}
}
