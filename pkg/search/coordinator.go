// Package search coordinates the strategy fallback chain behind a single
// entry point.
package search

import (
	"context"
	"log/slog"

	"github.com/soundprediction/globescope/pkg/alert"
	"github.com/soundprediction/globescope/pkg/dedup"
	"github.com/soundprediction/globescope/pkg/query"
	"github.com/soundprediction/globescope/pkg/strategy"
	"github.com/soundprediction/globescope/pkg/types"
)

// Coordinator runs strategies in priority order and returns the first
// non-empty, deduplicated candidate list. At most one strategy's results are
// ever used per call: merging both backends would mix their very different
// precision/recall characteristics into one ranked list.
type Coordinator struct {
	primary  strategy.Strategy
	fallback strategy.Strategy
	alerter  alert.Alerter
	logger   *slog.Logger
}

// NewCoordinator wires the strategy chain. Either strategy may be nil.
func NewCoordinator(primary, fallback strategy.Strategy, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		primary:  primary,
		fallback: fallback,
		alerter:  &alert.NoOpAlerter{},
		logger:   logger,
	}
}

// SetAlerter installs an operator alerter fired when every strategy in the
// chain is down at once.
func (c *Coordinator) SetAlerter(a alert.Alerter) {
	if a != nil {
		c.alerter = a
	}
}

// Search merges the params into a keyword list and walks the chain. An empty
// merge result is a no-op returning empty, not an error. The fallback runs
// only when the primary is unavailable, errors, or finds nothing.
func (c *Coordinator) Search(ctx context.Context, params types.SearchParams) ([]types.ArticleCandidate, error) {
	keywords := query.Merge(params)
	if len(keywords) == 0 {
		return nil, nil
	}

	opts := strategy.Options{
		Countries: params.TargetCountries,
		EventDate: params.EventDate,
	}

	if c.primary != nil && c.primary.IsAvailable() {
		candidates, err := c.primary.Search(ctx, keywords, opts)
		if err != nil {
			c.logger.Warn("Primary strategy failed, falling back",
				"strategy", c.primary.Name(), "error", err)
		} else if len(candidates) > 0 {
			return dedup.Dedupe(candidates), nil
		}
	}

	if c.fallback != nil && c.fallback.IsAvailable() {
		candidates, err := c.fallback.Search(ctx, keywords, opts)
		if err != nil {
			c.logger.Warn("Fallback strategy failed",
				"strategy", c.fallback.Name(), "error", err)
			return nil, nil
		}
		return dedup.Dedupe(candidates), nil
	}

	c.notifyOutage()
	return nil, nil
}

// notifyOutage fires when neither strategy could serve the request. Both
// backends being marked down usually means network trouble or expired
// credentials, which an operator needs to see before the process restarts.
func (c *Coordinator) notifyOutage() {
	primaryDown := c.primary == nil || !c.primary.IsAvailable()
	fallbackDown := c.fallback == nil || !c.fallback.IsAvailable()
	if !primaryDown || !fallbackDown {
		return
	}

	c.logger.Error("All search strategies unavailable")
	if err := c.alerter.Alert(
		"globescope: all search strategies unavailable",
		"Both the document search backend and the metadata warehouse are marked down. Searches are returning empty until the process is restarted.",
	); err != nil {
		c.logger.Warn("Failed to send outage alert", "error", err)
	}
}
