package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/soundprediction/globescope/pkg/types"
)

// SearchRequest is the body of POST /api/v1/search and /api/v1/analyze.
type SearchRequest struct {
	Topic           string            `json:"topic" binding:"required"`
	Keywords        []string          `json:"keywords,omitempty"`
	Entities        []string          `json:"entities,omitempty"`
	Locations       []string          `json:"locations,omitempty"`
	Themes          []string          `json:"themes,omitempty"`
	EventDate       string            `json:"event_date,omitempty"` // YYYY-MM-DD
	TargetCountries []string          `json:"target_countries,omitempty"`
	CountryRoles    map[string]string `json:"country_roles,omitempty"`
}

// Validate performs validation on SearchRequest
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic cannot be empty")
	}
	if len(r.Keywords)+len(r.Entities)+len(r.Locations)+len(r.Themes) == 0 {
		return errors.New("at least one of keywords, entities, locations, or themes is required")
	}
	if r.EventDate != "" {
		if _, err := time.Parse("2006-01-02", r.EventDate); err != nil {
			return errors.New("event_date must be formatted as YYYY-MM-DD")
		}
	}
	return nil
}

// ToParams converts the request into pipeline search parameters. Validate
// must have passed first.
func (r *SearchRequest) ToParams() types.SearchParams {
	params := types.SearchParams{
		Keywords:        r.Keywords,
		Entities:        r.Entities,
		Locations:       r.Locations,
		Themes:          r.Themes,
		TargetCountries: r.TargetCountries,
	}
	if r.EventDate != "" {
		if t, err := time.Parse("2006-01-02", r.EventDate); err == nil {
			params.EventDate = &t
		}
	}
	return params
}

// SearchResponse is the body returned by POST /api/v1/search.
type SearchResponse struct {
	RequestID string          `json:"request_id"`
	Count     int             `json:"count"`
	Articles  []types.Article `json:"articles"`
}

// AnalyzeResponse is the body returned by POST /api/v1/analyze.
type AnalyzeResponse struct {
	RequestID string       `json:"request_id"`
	Cached    bool         `json:"cached"`
	Report    types.Report `json:"report"`
}

// MediaListResponse is the body returned by GET /api/v1/media.
type MediaListResponse struct {
	Count   int               `json:"count"`
	Outlets []types.MediaInfo `json:"outlets"`
}
