// Package analysis implements the shared pipeline behind every AI analysis
// endpoint: validate, optionally fetch and sanitize the target page, build a
// fixed-template instruction, invoke the text-generation oracle, parse the
// structured output with a deterministic fallback, respond. A failure at any
// stage short-circuits; nothing is retried.
package analysis

import (
	"context"
	"time"

	"github.com/seogenix/backend/internal/fetch"
	"github.com/seogenix/backend/internal/oracle"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
)

// Per-endpoint character budgets for sanitized page content. They bound the
// prompt size sent to the oracle.
const (
	budgetAudit      = 8000
	budgetEntity     = 6000
	budgetSchema     = 5000
	budgetSummary    = 6000
	budgetCompetitor = 5000
	budgetCitations  = 3000
)

// Sampling temperatures. Structured extraction runs near-deterministic;
// free-form generation and chat run warmer.
const (
	tempStructured = 0.1
	tempSchema     = 0.2
	tempContent    = 0.5
	tempChat       = 0.7
)

// pipeline bundles the stages every analysis service shares.
type pipeline struct {
	fetcher fetch.PageFetcher
	oracle  oracle.Oracle
	logger  *logger.Logger
}

// fetchPage retrieves sanitized page text. Fetch failure degrades to empty
// content and is never fatal.
func (p *pipeline) fetchPage(ctx context.Context, url string, budget int) string {
	if url == "" {
		return ""
	}
	text, err := p.fetcher.Page(ctx, url, budget)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		}).Warn("Continuing analysis without page content")
		return ""
	}
	return text
}

// complete invokes the oracle and records the call duration. The outcome
// counter is recorded by the caller once it knows whether the output parsed.
func (p *pipeline) complete(ctx context.Context, endpoint string, req oracle.Request) (string, error) {
	start := time.Now()
	raw, err := p.oracle.Complete(ctx, req)
	if err != nil {
		metrics.RecordOracleRequest(endpoint, metrics.OutcomeError, time.Since(start))
		p.logger.WithFields(map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		}).Error("Oracle call failed")
		return "", err
	}
	return raw, nil
}

// decode parses structured oracle output into v. On parse failure it runs
// the caller's fallback and reports outcome=fallback so dashboards can tell
// synthesized results from real ones; the caller's response shape is
// identical either way.
func (p *pipeline) decode(endpoint, raw string, v interface{}, fallback func()) {
	if err := oracle.DecodeJSON(raw, v); err != nil {
		metrics.RecordOracleRequest(endpoint, metrics.OutcomeFallback, 0)
		p.logger.WithFields(map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		}).Warn("Oracle output did not parse, substituting fallback payload")
		fallback()
		return
	}
	metrics.RecordOracleRequest(endpoint, metrics.OutcomeOK, 0)
}
