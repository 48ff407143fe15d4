package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/types"
)

func newDocumentTestServer(t *testing.T, status int, body string) (*httptest.Server, *DocumentStrategy) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	s := NewDocumentStrategy(config.DocumentSearchConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
		MaxRecords:     50,
	}, nil)
	return srv, s
}

func TestDocumentSearchParsesArticles(t *testing.T) {
	body := `{"articles": [
		{"url": "https://cnn.com/story-one", "title": "Story One", "domain": "cnn.com", "seendate": "20240103T120000Z"},
		{"url": "https://bbc.co.uk/story-two", "title": "Story Two", "domain": "bbc.co.uk", "seendate": "20240104T080000Z"},
		{"url": "", "title": "Malformed", "domain": "cnn.com", "seendate": "20240103T120000Z"}
	]}`
	_, s := newDocumentTestServer(t, http.StatusOK, body)

	candidates, err := s.Search(context.Background(), []string{"chip ban"}, Options{})

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "https://cnn.com/story-one", candidates[0].URL)
	assert.Equal(t, "US", candidates[0].Country)
	assert.Equal(t, "GB", candidates[1].Country)
	require.NotNil(t, candidates[0].PublishedDate)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), *candidates[0].PublishedDate)
	assert.True(t, s.IsAvailable())
}

func TestDocumentSearchCountryFilter(t *testing.T) {
	body := `{"articles": [
		{"url": "https://cnn.com/a", "domain": "cnn.com", "seendate": "20240103T120000Z"},
		{"url": "https://bbc.co.uk/b", "domain": "bbc.co.uk", "seendate": "20240103T120000Z"}
	]}`
	_, s := newDocumentTestServer(t, http.StatusOK, body)

	candidates, err := s.Search(context.Background(), []string{"chip ban"}, Options{Countries: []string{"gb"}})

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "GB", candidates[0].Country)
}

func TestDocumentSearchDeduplicatesOwnResults(t *testing.T) {
	body := `{"articles": [
		{"url": "https://cnn.com/a", "domain": "cnn.com"},
		{"url": "https://cnn.com/a?ref=rss", "domain": "cnn.com"}
	]}`
	_, s := newDocumentTestServer(t, http.StatusOK, body)

	candidates, err := s.Search(context.Background(), []string{"chip ban"}, Options{})

	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestDocumentSearchMarksDownOnServerError(t *testing.T) {
	_, s := newDocumentTestServer(t, http.StatusInternalServerError, "oops")

	_, err := s.Search(context.Background(), []string{"chip ban"}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStrategyUnavailable)
	assert.False(t, s.IsAvailable())
}

func TestDocumentSearchMarksDownOnTransportFailure(t *testing.T) {
	srv, s := newDocumentTestServer(t, http.StatusOK, "{}")
	srv.Close()

	_, err := s.Search(context.Background(), []string{"chip ban"}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStrategyUnavailable)
	assert.False(t, s.IsAvailable())
}

func TestDocumentSearchParseErrorKeepsStrategyUp(t *testing.T) {
	_, s := newDocumentTestServer(t, http.StatusOK, "not json at all")

	_, err := s.Search(context.Background(), []string{"chip ban"}, Options{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrStrategyUnavailable)
	assert.True(t, s.IsAvailable())
}

func TestBuildRequestURLQuoting(t *testing.T) {
	s := NewDocumentStrategy(config.DocumentSearchConfig{BaseURL: "https://search.example"}, nil)

	keywords := []string{
		"semiconductor export controls now",
		"TSMC",
		"chip ban",
		"fourth keyword ignored",
	}
	reqURL := s.buildRequestURL(keywords)

	parsed, err := url.Parse(reqURL)
	require.NoError(t, err)
	q := parsed.Query()

	// Top three keywords, each truncated to three words, quoted, OR-joined.
	assert.Equal(t, `"semiconductor export controls" OR "TSMC" OR "chip ban"`, q.Get("query"))
	assert.Equal(t, "list", q.Get("mode"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "date-desc", q.Get("sort"))
	assert.Equal(t, "250", q.Get("maxrecords"))
	assert.Equal(t, "3m", q.Get("timespan"))
}

func TestParseSeenDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"full stamp", "20240103T120000Z", timePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))},
		{"date only", "20240103", timePtr(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))},
		{"too short", "2024", nil},
		{"garbage", "notadate", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSeenDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
