package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/globescope/pkg/strategy"
	"github.com/soundprediction/globescope/pkg/types"
)

// fakeStrategy is a hand-rolled strategy stub counting its invocations.
type fakeStrategy struct {
	name      string
	available bool
	results   []types.ArticleCandidate
	err       error
	calls     int
}

func (f *fakeStrategy) Name() string      { return f.name }
func (f *fakeStrategy) IsAvailable() bool { return f.available }

func (f *fakeStrategy) Search(_ context.Context, _ []string, _ strategy.Options) ([]types.ArticleCandidate, error) {
	f.calls++
	return f.results, f.err
}

// recordingAlerter captures alerts for assertions.
type recordingAlerter struct {
	subjects []string
}

func (r *recordingAlerter) Alert(subject, _ string) error {
	r.subjects = append(r.subjects, subject)
	return nil
}

func testParams() types.SearchParams {
	return types.SearchParams{Keywords: []string{"chip ban"}}
}

func TestCoordinatorPrimarySuccessSkipsFallback(t *testing.T) {
	primary := &fakeStrategy{
		name:      "primary",
		available: true,
		results:   []types.ArticleCandidate{{URL: "https://example.com/a"}},
	}
	fallback := &fakeStrategy{name: "fallback", available: true}
	c := NewCoordinator(primary, fallback, nil)

	candidates, err := c.Search(context.Background(), testParams())

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls, "fallback must not run when primary succeeds")
}

func TestCoordinatorFallbackOnPrimaryEmpty(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: true}
	fallback := &fakeStrategy{
		name:      "fallback",
		available: true,
		results:   []types.ArticleCandidate{{URL: "https://example.com/b"}},
	}
	c := NewCoordinator(primary, fallback, nil)

	candidates, err := c.Search(context.Background(), testParams())

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls, "fallback runs exactly once on empty primary")
}

func TestCoordinatorFallbackOnPrimaryError(t *testing.T) {
	primary := &fakeStrategy{
		name:      "primary",
		available: true,
		err:       errors.New("transport broke"),
	}
	fallback := &fakeStrategy{
		name:      "fallback",
		available: true,
		results:   []types.ArticleCandidate{{URL: "https://example.com/b"}},
	}
	c := NewCoordinator(primary, fallback, nil)

	candidates, err := c.Search(context.Background(), testParams())

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 1, fallback.calls)
}

func TestCoordinatorSkipsUnavailablePrimary(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: false}
	fallback := &fakeStrategy{
		name:      "fallback",
		available: true,
		results:   []types.ArticleCandidate{{URL: "https://example.com/b"}},
	}
	c := NewCoordinator(primary, fallback, nil)

	candidates, err := c.Search(context.Background(), testParams())

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 0, primary.calls)
}

func TestCoordinatorFallbackErrorYieldsEmptyNotError(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: false}
	fallback := &fakeStrategy{
		name:      "fallback",
		available: true,
		err:       errors.New("warehouse down"),
	}
	c := NewCoordinator(primary, fallback, nil)

	candidates, err := c.Search(context.Background(), testParams())

	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCoordinatorEmptyKeywordsShortCircuits(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: true}
	c := NewCoordinator(primary, nil, nil)

	candidates, err := c.Search(context.Background(), types.SearchParams{})

	assert.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, primary.calls)
}

func TestCoordinatorDeduplicatesResults(t *testing.T) {
	primary := &fakeStrategy{
		name:      "primary",
		available: true,
		results: []types.ArticleCandidate{
			{URL: "https://example.com/a"},
			{URL: "https://example.com/a?utm=1"},
			{URL: "https://example.com/b"},
		},
	}
	c := NewCoordinator(primary, nil, nil)

	candidates, err := c.Search(context.Background(), testParams())

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestCoordinatorAlertsWhenAllStrategiesDown(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: false}
	fallback := &fakeStrategy{name: "fallback", available: false}
	c := NewCoordinator(primary, fallback, nil)

	alerter := &recordingAlerter{}
	c.SetAlerter(alerter)

	candidates, err := c.Search(context.Background(), testParams())

	assert.NoError(t, err)
	assert.Empty(t, candidates)
	require.Len(t, alerter.subjects, 1)
	assert.Contains(t, alerter.subjects[0], "unavailable")
}

func TestCoordinatorNoAlertWhenOnlyPrimaryDown(t *testing.T) {
	primary := &fakeStrategy{name: "primary", available: false}
	fallback := &fakeStrategy{name: "fallback", available: true}
	c := NewCoordinator(primary, fallback, nil)

	alerter := &recordingAlerter{}
	c.SetAlerter(alerter)

	c.Search(context.Background(), testParams())

	assert.Empty(t, alerter.subjects)
}
