package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/dedup"
	"github.com/soundprediction/globescope/pkg/types"
)

const (
	// maxQueryKeywords bounds the boolean-OR query. The upstream
	// query-length limit causes silent truncation beyond three phrases.
	maxQueryKeywords = 3

	// maxPhraseWords truncates each keyword to a phrase the backend can
	// match without tripping the same limit.
	maxPhraseWords = 3
)

// DocumentStrategy queries a full-text news document index over HTTP. It is
// the primary strategy: recent coverage, real titles, fast.
type DocumentStrategy struct {
	baseURL    string
	maxRecords int
	timespan   string
	httpClient *http.Client
	avail      availability
	logger     *slog.Logger
}

var _ Strategy = (*DocumentStrategy)(nil)

// NewDocumentStrategy creates the document search strategy from config.
func NewDocumentStrategy(cfg config.DocumentSearchConfig, logger *slog.Logger) *DocumentStrategy {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = 250
	}

	timespan := cfg.Timespan
	if timespan == "" {
		timespan = "3m"
	}

	return &DocumentStrategy{
		baseURL:    cfg.BaseURL,
		maxRecords: maxRecords,
		timespan:   timespan,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name implements Strategy.
func (s *DocumentStrategy) Name() string { return "document-search" }

// IsAvailable implements Strategy.
func (s *DocumentStrategy) IsAvailable() bool { return s.avail.ok() }

// documentRecord is one entry of the backend's article list response.
type documentRecord struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Domain   string `json:"domain"`
	SeenDate string `json:"seendate"` // YYYYMMDDThhmmssZ
}

type documentResponse struct {
	Articles []documentRecord `json:"articles"`
}

// Search implements Strategy. Any transport-level failure marks the strategy
// down for the rest of the process and returns ErrStrategyUnavailable so the
// coordinator falls back.
func (s *DocumentStrategy) Search(ctx context.Context, keywords []string, opts Options) ([]types.ArticleCandidate, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	reqURL := s.buildRequestURL(keywords)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build document search request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.avail.markDown()
		s.logger.Warn("Document search transport failure, marking strategy down", "error", err)
		return nil, fmt.Errorf("document search request: %w: %w", types.ErrStrategyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.avail.markDown()
		s.logger.Warn("Document search returned non-2xx, marking strategy down", "status", resp.StatusCode)
		return nil, fmt.Errorf("document search status %d: %w", resp.StatusCode, types.ErrStrategyUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.avail.markDown()
		return nil, fmt.Errorf("read document search response: %w: %w", types.ErrStrategyUnavailable, err)
	}

	var parsed documentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Malformed body is a parse problem, not a transport problem;
		// the backend is still up.
		return nil, fmt.Errorf("decode document search response: %w", err)
	}

	candidates := s.toCandidates(parsed.Articles, opts.Countries)

	// Defense in depth: the backend occasionally repeats URLs within one
	// response, so dedupe before handing results up.
	return dedup.Dedupe(candidates), nil
}

// buildRequestURL assembles the GET query: at most three keywords, each
// truncated to its first three words and quoted for phrase search, joined
// with OR.
func (s *DocumentStrategy) buildRequestURL(keywords []string) string {
	phrases := make([]string, 0, maxQueryKeywords)
	for _, kw := range keywords {
		if len(phrases) >= maxQueryKeywords {
			break
		}
		words := strings.Fields(kw)
		if len(words) == 0 {
			continue
		}
		if len(words) > maxPhraseWords {
			words = words[:maxPhraseWords]
		}
		phrases = append(phrases, `"`+strings.Join(words, " ")+`"`)
	}

	params := url.Values{}
	params.Set("query", strings.Join(phrases, " OR "))
	params.Set("mode", "list")
	params.Set("maxrecords", strconv.Itoa(s.maxRecords))
	params.Set("format", "json")
	params.Set("sort", "date-desc")
	params.Set("timespan", s.timespan)

	return s.baseURL + "?" + params.Encode()
}

// toCandidates converts backend records, skipping malformed entries and
// applying the country filter against the inferred source country.
func (s *DocumentStrategy) toCandidates(records []documentRecord, countries []string) []types.ArticleCandidate {
	wanted := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		wanted[strings.ToUpper(c)] = struct{}{}
	}

	candidates := make([]types.ArticleCandidate, 0, len(records))
	for _, rec := range records {
		if rec.URL == "" {
			// Malformed entry; skip, siblings unaffected.
			continue
		}

		country := InferCountry(rec.Domain)
		if len(wanted) > 0 {
			if _, ok := wanted[country]; !ok {
				continue
			}
		}

		candidates = append(candidates, types.ArticleCandidate{
			URL:           rec.URL,
			SourceDomain:  rec.Domain,
			Country:       country,
			PublishedDate: parseSeenDate(rec.SeenDate),
		})
	}
	return candidates
}

// parseSeenDate takes the date part (first 8 chars) of the backend's
// YYYYMMDDThhmmssZ stamp. Malformed stamps yield nil, not an error.
func parseSeenDate(seendate string) *time.Time {
	if len(seendate) < 8 {
		return nil
	}
	t, err := time.Parse("20060102", seendate[:8])
	if err != nil {
		return nil
	}
	return &t
}
