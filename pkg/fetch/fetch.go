// Package fetch enriches surviving article candidates with fetched body
// text, translated titles, and media metadata under bounded concurrency.
package fetch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/extract"
	"github.com/soundprediction/globescope/pkg/media"
	"github.com/soundprediction/globescope/pkg/translate"
	"github.com/soundprediction/globescope/pkg/types"
	"github.com/soundprediction/globescope/pkg/utils"
)

const (
	// minContentLength drops pages that are 404s, paywalls, or stubs.
	minContentLength = 100

	// snippetLength is the content prefix kept for previews.
	snippetLength = 500
)

// Item pairs a candidate with its relevance score so the score survives into
// the enriched Article.
type Item struct {
	Candidate types.ArticleCandidate
	Score     float64
}

// Fetcher runs the enrichment stage. Each task is independent: one fetch
// timing out or erroring drops only that candidate and never cancels its
// siblings. Output order is not guaranteed; callers re-sort by relevance.
type Fetcher struct {
	extractor  extract.Extractor
	translator translate.Translator // nil disables translation
	registry   *media.Registry
	workers    int
	timeout    time.Duration
	limiter    *rate.Limiter // nil disables pacing
	logger     *slog.Logger
}

// NewFetcher wires the enrichment stage. Translator may be nil; registry may
// be nil to skip media tagging.
func NewFetcher(extractor extract.Extractor, translator translate.Translator, registry *media.Registry, cfg config.FetchConfig, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 10
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), workers)
	}

	return &Fetcher{
		extractor:  extractor,
		translator: translator,
		registry:   registry,
		workers:    workers,
		timeout:    timeout,
		limiter:    limiter,
		logger:     logger,
	}
}

// Enrich fetches and enriches every item concurrently and returns the
// articles that yielded usable content. Candidates whose pages produce less
// than minContentLength characters are discarded silently; that is the
// expected fate of dead links and paywalled URLs.
func (f *Fetcher) Enrich(ctx context.Context, items []Item) []types.Article {
	if len(items) == 0 || f.extractor == nil {
		return nil
	}

	pool := utils.NewWorkerPool(f.workers, f.enrichOne)
	results, errs := pool.ProcessItems(ctx, items)

	articles := make([]types.Article, 0, len(items))
	for i, art := range results {
		if errs[i] != nil {
			f.logger.Debug("Candidate dropped during enrichment",
				"url", items[i].Candidate.URL, "reason", errs[i])
			continue
		}
		articles = append(articles, art)
	}
	return articles
}

// EnrichCandidates is a convenience for callers without relevance scores.
func (f *Fetcher) EnrichCandidates(ctx context.Context, candidates []types.ArticleCandidate) []types.Article {
	items := make([]Item, len(candidates))
	for i, c := range candidates {
		items[i] = Item{Candidate: c}
	}
	return f.Enrich(ctx, items)
}

// enrichOne handles a single candidate: fetch, length gate, optional
// translation, media lookup.
func (f *Fetcher) enrichOne(ctx context.Context, item Item) (types.Article, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return types.Article{}, err
		}
	}

	taskCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	candidate := item.Candidate

	extracted, err := f.extractor.ExtractWithTitle(taskCtx, candidate.URL)
	if err != nil {
		return types.Article{}, err
	}
	if len(extracted.Content) < minContentLength {
		return types.Article{}, types.ErrContentTooShort
	}

	title := extracted.Title
	if title == "" {
		title = candidate.SourceDomain
	}

	article := types.Article{
		ArticleCandidate: candidate,
		Title:            title,
		Content:          extracted.Content,
		Snippet:          snippet(extracted.Content),
		RelevanceScore:   item.Score,
	}

	if f.translator != nil {
		translated, err := f.translator.Translate(taskCtx, title)
		if err != nil {
			// Best-effort: keep the original title.
			f.logger.Debug("Title translation failed", "url", candidate.URL, "error", err)
		} else if translated != "" {
			article.TitleTranslated = translated
		}
	}

	if f.registry != nil {
		info := f.registry.Lookup(candidate.SourceDomain, candidate.Country)
		article.MediaType = info.Type
		article.MediaCategory = info.Category
	}

	return article, nil
}

// snippet returns the first snippetLength characters of content, respecting
// rune boundaries.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength])
}
