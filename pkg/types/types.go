package types

import (
	"errors"
	"time"
)

// Sentinel errors shared across pipeline stages. Callers use errors.Is to
// decide whether an error triggers strategy fallback or is simply logged.
var (
	ErrStrategyUnavailable = errors.New("search strategy unavailable")
	ErrEmbeddingFailed     = errors.New("embedding request failed")
	ErrContentTooShort     = errors.New("extracted content too short")
	ErrNoExtractor         = errors.New("no content extractor configured")
)

// SearchParams describes one search request. It is owned by the caller and
// read-only to the pipeline; stages that need to vary it work on a Clone.
type SearchParams struct {
	Keywords        []string   `json:"keywords"`
	Entities        []string   `json:"entities,omitempty"`
	Locations       []string   `json:"locations,omitempty"`
	Themes          []string   `json:"themes,omitempty"`
	EventDate       *time.Time `json:"event_date,omitempty"`
	TargetCountries []string   `json:"target_countries,omitempty"`
}

// Clone returns a deep copy so per-country runs can narrow the country filter
// without mutating the caller's params.
func (p SearchParams) Clone() SearchParams {
	clone := SearchParams{
		Keywords:        append([]string(nil), p.Keywords...),
		Entities:        append([]string(nil), p.Entities...),
		Locations:       append([]string(nil), p.Locations...),
		Themes:          append([]string(nil), p.Themes...),
		TargetCountries: append([]string(nil), p.TargetCountries...),
	}
	if p.EventDate != nil {
		d := *p.EventDate
		clone.EventDate = &d
	}
	return clone
}

// ArticleCandidate is a raw search hit produced by a strategy. It is
// immutable once created; enrichment copies it into an Article.
type ArticleCandidate struct {
	URL           string     `json:"url"`
	SourceDomain  string     `json:"source_domain"`
	Country       string     `json:"country,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	ToneScore     float64    `json:"tone_score"`
	RawLocations  string     `json:"raw_locations,omitempty"`
	RawThemes     string     `json:"raw_themes,omitempty"`
}

// Article is a candidate enriched with fetched body text and media metadata.
// It is mutated only inside the content fetcher, then treated as frozen.
type Article struct {
	ArticleCandidate

	Title           string  `json:"title"`
	TitleTranslated string  `json:"title_translated,omitempty"`
	Content         string  `json:"content"`
	Snippet         string  `json:"snippet"`
	RelevanceScore  float64 `json:"relevance_score"`
	MediaType       string  `json:"media_type,omitempty"`
	MediaCategory   string  `json:"media_category,omitempty"`
}

// CountryBucket holds the per-country slice of an orchestration report.
// A bucket is written once during its country's loop iteration and never
// mutated afterwards.
type CountryBucket struct {
	Role     string    `json:"role"`
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
	Note     string    `json:"note,omitempty"`
}

// Report maps country codes to their buckets for one orchestrator run.
type Report map[string]CountryBucket

// MediaInfo describes an outlet from the media registry. Unknown lookups
// return the sentinel record rather than an error.
type MediaInfo struct {
	Name        string `json:"name" yaml:"name"`
	Country     string `json:"country" yaml:"country"`
	Type        string `json:"type" yaml:"type"`         // broadcaster, newspaper, agency
	Category    string `json:"category" yaml:"category"` // public, commercial
	Credibility int    `json:"credibility" yaml:"credibility"`
	Bias        string `json:"bias,omitempty" yaml:"bias,omitempty"`
}

// contextKey is a private type for context values set by the server layer.
type contextKey string

// Context keys for request metadata carried through the pipeline.
const (
	ContextKeyRequestID     contextKey = "request_id"
	ContextKeyRequestSource contextKey = "request_source"
)
