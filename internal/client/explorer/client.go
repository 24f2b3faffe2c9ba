package explorerclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/GregMSThompson/chain-assistant/internal/dto"
	"github.com/GregMSThompson/chain-assistant/internal/htmltext"
	"github.com/GregMSThompson/chain-assistant/pkg/logger"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	// identifiers longer than this are transaction signatures
	maxAddressLen = 44
	excerptRunes  = 500
	maxBodyBytes  = 2 << 20
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ResolveURL picks the transaction or address page for id.
func (c *Client) ResolveURL(id string) string {
	kind := "address"
	if len(id) > maxAddressLen {
		kind = "tx"
	}
	return fmt.Sprintf("%s/%s/%s", c.baseURL, kind, url.PathEscape(id))
}

// Summarize fetches the explorer page for id. Failures are folded into a
// fallback summary, so the result is always usable as context.
func (c *Client) Summarize(ctx context.Context, id string) dto.ExplorerSummary {
	log := logger.FromContext(ctx)
	pageURL := c.ResolveURL(id)

	doc, err := c.fetch(ctx, pageURL)
	if err != nil {
		log.Warn("explorer fetch failed", "id", id, "url", pageURL, "error", err)
		return dto.ExplorerSummary{
			ID:   id,
			URL:  pageURL,
			Text: fmt.Sprintf("Error fetching explorer data for %s.", id),
			Err:  err,
		}
	}

	log.Debug("explorer page parsed", "id", id, "title", doc.Title)
	return dto.ExplorerSummary{
		ID:   id,
		URL:  pageURL,
		Text: fmt.Sprintf("Parsed %s: %s...", doc.Title, htmltext.Excerpt(doc.Text, excerptRunes)),
		OK:   true,
	}
}

func (c *Client) fetch(ctx context.Context, pageURL string) (doc htmltext.Document, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return doc, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return doc, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close body: %w", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return doc, fmt.Errorf("do request: unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return doc, fmt.Errorf("read body: %w", err)
	}

	return htmltext.Parse(string(body)), nil
}
