package checkpoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/globescope/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleParams() types.SearchParams {
	return types.SearchParams{
		Keywords:        []string{"flood", "evacuation"},
		TargetCountries: []string{"US", "JP"},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)

	cp := NewRunCheckpoint("run-1", "flood response", sampleParams())
	cp.MarkCountry("US", types.CountryBucket{Role: "primary", Count: 2}, []string{
		"https://news.example/us/story-0",
		"https://news.example/us/story-1",
	})
	require.NoError(t, store.Save(cp))

	loaded, err := store.Load("run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, "flood response", loaded.Topic)
	assert.Equal(t, cp.Params.Keywords, loaded.Params.Keywords)
	assert.Contains(t, loaded.Completed, "US")
	assert.Equal(t, 2, loaded.Completed["US"].Count)
	assert.Len(t, loaded.SeenURLs, 2)
}

func TestLoadMissingCheckpoint(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("no-such-run")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidRunIDs(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		runID string
	}{
		{name: "empty", runID: ""},
		{name: "path traversal", runID: "../escape"},
		{name: "forward slash", runID: "a/b"},
		{name: "backslash", runID: "a\\b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Load(tt.runID)
			assert.ErrorIs(t, err, ErrInvalidRunID)

			err = store.Save(&RunCheckpoint{RunID: tt.runID})
			assert.ErrorIs(t, err, ErrInvalidRunID)

			assert.ErrorIs(t, store.Delete(tt.runID), ErrInvalidRunID)
		})
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	cp := NewRunCheckpoint("run-1", "topic", sampleParams())
	require.NoError(t, store.Save(cp))

	require.NoError(t, store.Delete("run-1"))

	_, err := store.Load("run-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete("run-1"))
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(NewRunCheckpoint("run-a", "a", sampleParams())))
	require.NoError(t, store.Save(NewRunCheckpoint("run-b", "b", sampleParams())))

	ids, err := store.List()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"run-a", "run-b"}, ids)
}

func TestCanResume(t *testing.T) {
	tests := []struct {
		name        string
		attempts    int
		age         time.Duration
		maxAttempts int
		maxAge      time.Duration
		want        bool
	}{
		{name: "fresh first attempt", attempts: 0, age: time.Minute, maxAttempts: 3, maxAge: time.Hour, want: true},
		{name: "attempts exhausted", attempts: 3, age: time.Minute, maxAttempts: 3, maxAge: time.Hour, want: false},
		{name: "too old", attempts: 0, age: 2 * time.Hour, maxAttempts: 3, maxAge: time.Hour, want: false},
		{name: "limits disabled", attempts: 100, age: 48 * time.Hour, maxAttempts: 0, maxAge: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := NewRunCheckpoint("run-1", "topic", sampleParams())
			cp.AttemptCount = tt.attempts
			cp.CreatedAt = time.Now().Add(-tt.age)

			assert.Equal(t, tt.want, cp.CanResume(tt.maxAttempts, tt.maxAge))
		})
	}
}

func TestMarkCountryAccumulatesSeenURLs(t *testing.T) {
	cp := NewRunCheckpoint("run-1", "topic", sampleParams())

	cp.MarkCountry("US", types.CountryBucket{Count: 1}, []string{"https://a.example/1"})
	cp.MarkCountry("JP", types.CountryBucket{Count: 1}, []string{"https://b.example/2"})

	assert.Len(t, cp.Completed, 2)
	assert.Equal(t, []string{"https://a.example/1", "https://b.example/2"}, cp.SeenURLs)
}
