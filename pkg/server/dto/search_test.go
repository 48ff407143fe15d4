package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		wantErr string
	}{
		{
			name: "valid with keywords",
			req:  SearchRequest{Topic: "chip exports", Keywords: []string{"chip ban"}},
		},
		{
			name: "valid with only themes",
			req:  SearchRequest{Topic: "sanctions", Themes: []string{"ECON_SANCTIONS"}},
		},
		{
			name:    "empty topic",
			req:     SearchRequest{Topic: "   ", Keywords: []string{"x"}},
			wantErr: "topic cannot be empty",
		},
		{
			name:    "no search terms",
			req:     SearchRequest{Topic: "chip exports"},
			wantErr: "at least one of keywords, entities, locations, or themes is required",
		},
		{
			name:    "bad event date",
			req:     SearchRequest{Topic: "chip exports", Keywords: []string{"x"}, EventDate: "03/15/2024"},
			wantErr: "event_date must be formatted as YYYY-MM-DD",
		},
		{
			name: "good event date",
			req:  SearchRequest{Topic: "chip exports", Keywords: []string{"x"}, EventDate: "2024-03-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestSearchRequestToParams(t *testing.T) {
	req := SearchRequest{
		Topic:           "chip exports",
		Keywords:        []string{"chip ban"},
		Entities:        []string{"TSMC"},
		EventDate:       "2024-03-15",
		TargetCountries: []string{"US", "KR"},
	}

	params := req.ToParams()

	assert.Equal(t, req.Keywords, params.Keywords)
	assert.Equal(t, req.Entities, params.Entities)
	assert.Equal(t, req.TargetCountries, params.TargetCountries)
	require.NotNil(t, params.EventDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), params.EventDate.UTC())
}

func TestSearchRequestToParamsNoDate(t *testing.T) {
	req := SearchRequest{Topic: "chip exports", Keywords: []string{"chip ban"}}

	assert.Nil(t, req.ToParams().EventDate)
}
