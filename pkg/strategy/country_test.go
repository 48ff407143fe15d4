package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferCountry(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"bbc.co.uk", "GB"},
		{"news.bbc.co.uk", "GB"},
		{"lemonde.fr", "FR"},
		{"asahi.jp", "JP"},
		{"example.com", "US"},
		{"cnn.com", "US"},
		{"chosun.co.kr", "KR"},
		{"no-tld-at-all", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCountry(tt.domain))
		})
	}
}

func TestInferCountryKnownOutletBeatsTLD(t *testing.T) {
	// The outlet table wins over the generic .com rule.
	assert.Equal(t, "QA", InferCountry("aljazeera.com"))
}
