// Package dedup canonicalizes article URLs and removes duplicates across
// search results.
package dedup

import (
	"net/url"
	"strings"

	"github.com/soundprediction/globescope/pkg/types"
)

// Normalize lowercases a URL and keeps scheme, host, and path only, dropping
// the query string and fragment and a single trailing slash. Two URLs that
// differ only in tracking parameters normalize to the same key. Unparseable
// input falls back to the lowercased raw string so dedupe still works on it.
func Normalize(rawURL string) string {
	lowered := strings.ToLower(strings.TrimSpace(rawURL))

	u, err := url.Parse(lowered)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(lowered, "/")
	}

	path := strings.TrimSuffix(u.Path, "/")
	if u.Scheme == "" {
		return u.Host + path
	}
	return u.Scheme + "://" + u.Host + path
}

// Dedupe returns candidates with duplicate URLs removed, first-seen-wins,
// preserving input order.
func Dedupe(candidates []types.ArticleCandidate) []types.ArticleCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]types.ArticleCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := Normalize(c.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Set tracks normalized URLs across pipeline stages, e.g. to prevent the same
// article from being counted under two different countries.
type Set struct {
	members map[string]struct{}
}

// NewSet returns an empty URL set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Contains reports whether the URL's normalized form is already present.
func (s *Set) Contains(rawURL string) bool {
	_, ok := s.members[Normalize(rawURL)]
	return ok
}

// Add inserts the URL's normalized form.
func (s *Set) Add(rawURL string) {
	s.members[Normalize(rawURL)] = struct{}{}
}

// Len returns the number of distinct normalized URLs.
func (s *Set) Len() int {
	return len(s.members)
}
