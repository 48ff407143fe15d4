// Package report runs the per-country orchestration loop and assembles the
// keyed country report.
package report

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/soundprediction/globescope/pkg/checkpoint"
	"github.com/soundprediction/globescope/pkg/dedup"
	"github.com/soundprediction/globescope/pkg/fetch"
	"github.com/soundprediction/globescope/pkg/relevance"
	"github.com/soundprediction/globescope/pkg/search"
	"github.com/soundprediction/globescope/pkg/types"
)

// DefaultRole labels countries whose role the caller did not specify.
const DefaultRole = "related"

// noResultsNote marks an empty bucket so consumers can tell "searched,
// nothing relevant" from "never searched".
const noResultsNote = "no relevant articles"

// Orchestrator runs the coordinated search once per target country,
// relevance-filters and caps each country's results, and enriches the
// survivors. Countries are processed sequentially; only the enrichment
// stage inside a country batch is concurrent.
type Orchestrator struct {
	coordinator   *search.Coordinator
	filter        *relevance.Filter
	fetcher       *fetch.Fetcher
	perCountryCap int
	logger        *slog.Logger

	// Resumable-run support, nil when disabled.
	store          *checkpoint.Store
	resumeAttempts int
	resumeMaxAge   time.Duration
}

func NewOrchestrator(coordinator *search.Coordinator, filter *relevance.Filter, fetcher *fetch.Fetcher, perCountryCap int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if perCountryCap <= 0 {
		perCountryCap = 5
	}
	return &Orchestrator{
		coordinator:   coordinator,
		filter:        filter,
		fetcher:       fetcher,
		perCountryCap: perCountryCap,
		logger:        logger,
	}
}

// SetCheckpointStore enables resumable runs through RunResumable. maxAttempts
// and maxAge bound how long an interrupted run stays resumable.
func (o *Orchestrator) SetCheckpointStore(store *checkpoint.Store, maxAttempts int, maxAge time.Duration) {
	o.store = store
	o.resumeAttempts = maxAttempts
	o.resumeMaxAge = maxAge
}

// Run executes one orchestration pass over params.TargetCountries and returns
// a bucket per country. roles optionally maps country codes to their role in
// the story; missing entries get DefaultRole. The returned report is always
// well formed: a country that yields nothing gets an empty bucket with a
// note, never a missing key, and Run itself never fails.
func (o *Orchestrator) Run(ctx context.Context, params types.SearchParams, topic string, roles map[string]string) types.Report {
	rep := make(types.Report, len(params.TargetCountries))
	if len(params.TargetCountries) == 0 {
		return rep
	}

	// One topic embedding for the whole run. nil means the provider is
	// down and the filter fails open.
	topicVec := o.filter.TopicVector(ctx, topic)

	seen := dedup.NewSet()
	for _, country := range params.TargetCountries {
		bucket, _ := o.processCountry(ctx, params, country, roles, topicVec, seen)
		rep[country] = bucket
	}
	return rep
}

// RunResumable behaves like Run but checkpoints after every country. If a
// checkpoint for runID already exists and is still fresh, its completed
// countries are reused and only the remainder is searched. The checkpoint is
// deleted once every country has completed.
func (o *Orchestrator) RunResumable(ctx context.Context, runID string, params types.SearchParams, topic string, roles map[string]string) types.Report {
	if o.store == nil {
		return o.Run(ctx, params, topic, roles)
	}

	cp, err := o.store.Load(runID)
	switch {
	case err == nil && cp.CanResume(o.resumeAttempts, o.resumeMaxAge):
		cp.AttemptCount++
		o.logger.Info("Resuming orchestration run",
			"run_id", runID, "completed", len(cp.Completed), "attempt", cp.AttemptCount)
	case err == nil:
		o.logger.Info("Discarding stale checkpoint", "run_id", runID)
		cp = checkpoint.NewRunCheckpoint(runID, topic, params)
	default:
		cp = checkpoint.NewRunCheckpoint(runID, topic, params)
	}

	rep := make(types.Report, len(params.TargetCountries))
	topicVec := o.filter.TopicVector(ctx, topic)

	seen := dedup.NewSet()
	for _, url := range cp.SeenURLs {
		seen.Add(url)
	}

	for _, country := range params.TargetCountries {
		if bucket, done := cp.Completed[country]; done {
			rep[country] = bucket
			continue
		}

		bucket, claimed := o.processCountry(ctx, params, country, roles, topicVec, seen)
		rep[country] = bucket

		cp.MarkCountry(country, bucket, claimed)
		if err := o.store.Save(cp); err != nil {
			o.logger.Warn("Failed to save checkpoint", "run_id", runID, "error", err)
		}
	}

	if err := o.store.Delete(runID); err != nil {
		o.logger.Warn("Failed to delete finished checkpoint", "run_id", runID, "error", err)
	}
	return rep
}

// processCountry wraps runCountry in bucket bookkeeping and reports the URLs
// the country claimed from the shared seen set.
func (o *Orchestrator) processCountry(ctx context.Context, params types.SearchParams, country string, roles map[string]string, topicVec []float32, seen *dedup.Set) (types.CountryBucket, []string) {
	role := roles[country]
	if role == "" {
		role = DefaultRole
	}

	articles, claimed := o.runCountry(ctx, params, country, topicVec, seen)

	bucket := types.CountryBucket{
		Role:     role,
		Count:    len(articles),
		Articles: articles,
	}
	if len(articles) == 0 {
		bucket.Note = noResultsNote
	}
	return bucket, claimed
}

func (o *Orchestrator) runCountry(ctx context.Context, params types.SearchParams, country string, topicVec []float32, seen *dedup.Set) ([]types.Article, []string) {
	countryParams := params.Clone()
	countryParams.TargetCountries = []string{country}

	candidates, err := o.coordinator.Search(ctx, countryParams)
	if err != nil {
		o.logger.Warn("Search failed for country", "country", country, "error", err)
		return nil, nil
	}
	if len(candidates) == 0 {
		o.logger.Debug("No candidates for country", "country", country)
		return nil, nil
	}

	scored := make([]fetch.Item, 0, len(candidates))
	for _, c := range candidates {
		if seen.Contains(c.URL) {
			continue
		}
		score := o.filter.Score(ctx, ScoringText(c), topicVec)
		if !o.filter.Accept(score) {
			continue
		}
		scored = append(scored, fetch.Item{Candidate: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > o.perCountryCap {
		scored = scored[:o.perCountryCap]
	}

	claimed := make([]string, 0, len(scored))
	for _, item := range scored {
		seen.Add(item.Candidate.URL)
		claimed = append(claimed, dedup.Normalize(item.Candidate.URL))
	}

	articles := o.fetcher.Enrich(ctx, scored)

	// Fetch tasks complete in arbitrary order.
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].RelevanceScore > articles[j].RelevanceScore
	})

	o.logger.Info("Country batch complete",
		"country", country,
		"candidates", len(candidates),
		"accepted", len(scored),
		"articles", len(articles))
	return articles, claimed
}

// ScoringText derives scoring text from a candidate. Candidates carry no
// title before enrichment, so the URL slug stands in for one: the last path
// segment with separators turned into spaces reads close enough to a
// headline for embedding purposes.
func ScoringText(c types.ArticleCandidate) string {
	u := c.URL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimSuffix(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		u = u[i+1:]
	}
	if i := strings.LastIndex(u, "."); i > 0 {
		u = u[:i]
	}
	u = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(u)
	u = strings.TrimSpace(u)
	if u == "" {
		return c.SourceDomain
	}
	return u
}
