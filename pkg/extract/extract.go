// Package extract fetches article pages and pulls out readable title and
// body text.
package extract

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Result is the outcome of one extraction. Both fields may be empty when the
// page could not be fetched or parsed; that is a normal outcome, not an
// error.
type Result struct {
	Title   string
	Content string
}

// Extractor turns an article URL into title and body text. Implementations
// are best-effort: ordinary fetch failures come back as an empty Result with
// a nil error so batch callers can keep going without error plumbing.
type Extractor interface {
	ExtractWithTitle(ctx context.Context, articleURL string) (Result, error)
}

// ReadabilityExtractor implements Extractor using go-readability over a
// plain HTTP fetch. It does not render JavaScript.
type ReadabilityExtractor struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Extractor = (*ReadabilityExtractor)(nil)

// NewReadabilityExtractor creates an extractor with a per-request timeout.
func NewReadabilityExtractor(timeout time.Duration, logger *slog.Logger) *ReadabilityExtractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadabilityExtractor{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ExtractWithTitle fetches the page and runs readability over it. Fetch and
// parse failures are logged and reported as an empty Result.
func (e *ReadabilityExtractor) ExtractWithTitle(ctx context.Context, articleURL string) (Result, error) {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		e.logger.Debug("Skipping unparseable article URL", "url", articleURL, "error", err)
		return Result{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return Result{}, nil
	}
	req.Header.Set("User-Agent", "globescope/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Debug("Article fetch failed", "url", articleURL, "error", err)
		return Result{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.logger.Debug("Article fetch non-2xx", "url", articleURL, "status", resp.StatusCode)
		return Result{}, nil
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		e.logger.Debug("Readability parse failed", "url", articleURL, "error", err)
		return Result{}, nil
	}

	return Result{
		Title:   article.Title,
		Content: article.TextContent,
	}, nil
}
