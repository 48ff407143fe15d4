// Package strategy implements the search backends behind the coordinator:
// a full-text document search API and a historical metadata warehouse.
package strategy

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/soundprediction/globescope/pkg/types"
)

// Strategy is a single search backend. Implementations keep a sticky
// per-instance availability flag: after a transport-level failure the
// strategy reports unavailable for the remainder of the process so callers
// short-circuit instead of retrying a broken backend on every request.
type Strategy interface {
	// Name returns the strategy identifier for logs.
	Name() string

	// IsAvailable reports whether the backend is believed reachable.
	IsAvailable() bool

	// Search runs one query over the backend. Keywords come pre-merged
	// from the query planner; Options carries the strategy-specific extra
	// filters.
	Search(ctx context.Context, keywords []string, opts Options) ([]types.ArticleCandidate, error)
}

// Options carries the filters that are not part of the flat keyword list.
type Options struct {
	// Countries restricts results to these ISO country codes when set.
	Countries []string

	// EventDate centers the warehouse date window. Nil means "now".
	EventDate *time.Time
}

// availability is the sticky flag shared by strategy implementations. It is
// written only on failure paths and read before each call, so an atomic
// boolean suffices.
type availability struct {
	down atomic.Bool
}

func (a *availability) ok() bool {
	return !a.down.Load()
}

func (a *availability) markDown() {
	a.down.Store(true)
}
