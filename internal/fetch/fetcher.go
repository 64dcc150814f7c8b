// Package fetch retrieves target pages for analysis. Fetch failures are
// expected and non-fatal: callers degrade to empty content instead of
// failing the request.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/doyensec/safeurl"

	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

// PageFetcher retrieves and extracts readable text from a URL, truncated to
// a caller-supplied character budget.
type PageFetcher interface {
	Page(ctx context.Context, url string, budget int) (string, error)
}

// Fetcher is the production PageFetcher. Its HTTP client refuses private,
// loopback and link-local destinations so a user-supplied URL cannot reach
// internal infrastructure.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    *logger.Logger
}

// New creates a fetcher with an SSRF-guarded client.
func New(cfg config.FetchConfig, log *logger.Logger) *Fetcher {
	safe := safeurl.Client(safeurl.GetConfigBuilder().
		SetTimeout(cfg.Timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build())

	return &Fetcher{
		client:    safe.Client,
		userAgent: cfg.UserAgent,
		maxBody:   cfg.MaxBodySize,
		logger:    log,
	}
}

// NewWithClient creates a fetcher around an explicit HTTP client. Used by
// tests and by deployments that front the fetcher with their own proxy.
func NewWithClient(client *http.Client, userAgent string, maxBody int64, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		maxBody:   maxBody,
		logger:    log,
	}
}

// Page fetches a URL and returns its readable text, truncated to budget
// characters. Any failure returns an empty string and the error; callers
// treat that as degraded input, not a request failure.
func (f *Fetcher) Page(ctx context.Context, url string, budget int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordPageFetch(metrics.OutcomeError)
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordPageFetch(metrics.OutcomeError)
		f.logger.WithFields(map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		}).Warn("Page fetch failed")
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordPageFetch(metrics.OutcomeError)
		f.logger.WithFields(map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
		}).Warn("Page fetch returned non-2xx status")
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		metrics.RecordPageFetch(metrics.OutcomeError)
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	metrics.RecordPageFetch(metrics.OutcomeOK)
	return ExtractText(string(body), budget), nil
}
