package strategy

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/globescope/pkg/config"
)

func newTestMetadataStrategy() *MetadataStrategy {
	return NewMetadataStrategy(nil, config.WarehouseConfig{
		WindowDays:      4,
		MaxResults:      30,
		TrustedDomains:  []string{"reuters.com", "bbc.co.uk"},
		ExcludedSources: []string{"youtube.com", "twitter.com"},
	}, nil)
}

func TestMetadataStrategyNilDBUnavailable(t *testing.T) {
	s := newTestMetadataStrategy()
	assert.False(t, s.IsAvailable())
}

func TestDateWindow(t *testing.T) {
	s := newTestMetadataStrategy()
	event := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

	start, end := s.DateWindow(&event)

	assert.Equal(t, time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), end)
}

func TestDateWindowDefaultsToNow(t *testing.T) {
	s := newTestMetadataStrategy()

	start, end := s.DateWindow(nil)

	assert.True(t, start.Before(end))
	assert.Equal(t, 8*24*time.Hour, end.Sub(start))
}

func TestBuildQuery(t *testing.T) {
	s := newTestMetadataStrategy()
	event := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sqlStr, args, err := s.buildQuery([]string{"chip ban", "TSMC"}, Options{
		Countries: []string{"kr"},
		EventDate: &event,
	})

	require.NoError(t, err)
	assert.Contains(t, sqlStr, "FROM gkg_partitioned")
	assert.Contains(t, sqlStr, "partition_date >= $")
	assert.Contains(t, sqlStr, "partition_date <= $")
	assert.Contains(t, sqlStr, "LOWER(document_identifier) LIKE")
	assert.Contains(t, sqlStr, "locations LIKE")
	assert.Contains(t, sqlStr, "ORDER BY partition_date DESC")
	assert.Contains(t, sqlStr, "LIMIT 30")
	// Dollar placeholders for postgres.
	assert.NotContains(t, sqlStr, "?")

	// Keyword spaces become % wildcards, lowered.
	assert.Contains(t, args, "%chip%ban%")
	assert.Contains(t, args, "%tsmc%")
	// Country matches the #ISO# pattern.
	assert.Contains(t, args, "%#KR#%")
	// Allowlist and exclusions travel as args too.
	assert.Contains(t, args, "reuters.com")
	assert.Contains(t, args, "youtube.com")
}

func TestBuildQueryWithoutCountries(t *testing.T) {
	s := newTestMetadataStrategy()

	sqlStr, _, err := s.buildQuery([]string{"chip ban"}, Options{})

	require.NoError(t, err)
	assert.False(t, strings.Contains(sqlStr, "locations LIKE"))
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"first csv value", "-3.2,1.5,4.7,0,0,0", -3.2},
		{"single value", "2.5", 2.5},
		{"whitespace tolerated", " 1.25 ,3", 1.25},
		{"empty", "", 0},
		{"garbage", "abc,1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseTone(tt.in), 1e-9)
		})
	}
}

func TestExtractCountry(t *testing.T) {
	locations := "1#United States#US#US#38#-97#US;4#Seoul, South Korea#KR#KR11#37.56#126.99#-2"

	tests := []struct {
		name    string
		targets []string
		want    string
	}{
		{"target match wins", []string{"KR"}, "KR"},
		{"target match case insensitive", []string{"kr"}, "KR"},
		{"no targets takes first", nil, "US"},
		{"unmatched target takes first", []string{"JP"}, "US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCountry(locations, tt.targets))
		})
	}
}

func TestExtractCountryMalformed(t *testing.T) {
	assert.Equal(t, "Unknown", ExtractCountry("", nil))
	assert.Equal(t, "Unknown", ExtractCountry("no-delimiters-here", nil))
	assert.Equal(t, "Unknown", ExtractCountry("1#Name only;2#Other", nil))
}
