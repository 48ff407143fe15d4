// Package query normalizes heterogeneous search parameters into the flat
// keyword list both search strategies consume.
package query

import (
	"strings"
	"unicode/utf8"

	"github.com/soundprediction/globescope/pkg/types"
)

// minKeywordLength drops fragments too short to match anything useful.
const minKeywordLength = 2

// Merge folds keywords, entities, locations, and theme codes into one
// deduplicated keyword list. Theme codes like "ECON_TRADE" become
// "econ trade". Deduplication is case-insensitive and entries shorter than
// two characters after trimming are dropped. Merge is pure: it never touches
// the input params, and an empty result simply means every field was empty.
func Merge(params types.SearchParams) []string {
	var merged []string
	seen := make(map[string]struct{})

	add := func(s string) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < minKeywordLength {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		merged = append(merged, s)
	}

	for _, kw := range params.Keywords {
		add(kw)
	}
	for _, e := range params.Entities {
		add(e)
	}
	for _, loc := range params.Locations {
		add(loc)
	}
	for _, theme := range params.Themes {
		// Theme codes are controlled-vocabulary tags with underscores.
		add(strings.ToLower(strings.ReplaceAll(theme, "_", " ")))
	}

	return merged
}
