package strategy

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/types"
)

// MetadataStrategy queries a time-partitioned warehouse of article metadata.
// It is the fallback: historical reach, but no article titles or body text,
// so keyword matching happens against the URL string and a trusted-domain
// allowlist compensates for the missing full-text verification.
type MetadataStrategy struct {
	db         *sql.DB
	table      string
	windowDays int
	maxResults int
	trusted    []string
	excluded   []string
	avail      availability
	logger     *slog.Logger
}

var _ Strategy = (*MetadataStrategy)(nil)

// NewMetadataStrategy creates the warehouse strategy. A nil db leaves the
// strategy permanently unavailable, which the coordinator treats the same as
// a tripped circuit.
func NewMetadataStrategy(db *sql.DB, cfg config.WarehouseConfig, logger *slog.Logger) *MetadataStrategy {
	if logger == nil {
		logger = slog.Default()
	}

	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 4
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 30
	}
	table := cfg.Table
	if table == "" {
		table = "gkg_partitioned"
	}

	s := &MetadataStrategy{
		db:         db,
		table:      table,
		windowDays: windowDays,
		maxResults: maxResults,
		trusted:    cfg.TrustedDomains,
		excluded:   cfg.ExcludedSources,
		logger:     logger,
	}
	if db == nil {
		s.avail.markDown()
	}
	return s
}

// Name implements Strategy.
func (s *MetadataStrategy) Name() string { return "metadata-warehouse" }

// IsAvailable implements Strategy.
func (s *MetadataStrategy) IsAvailable() bool { return s.avail.ok() }

// Search implements Strategy. Query execution failures are logged and yield
// an empty result rather than an error: the warehouse is the last strategy
// in the chain and the pipeline treats "nothing found" and "warehouse down"
// identically downstream.
func (s *MetadataStrategy) Search(ctx context.Context, keywords []string, opts Options) ([]types.ArticleCandidate, error) {
	if len(keywords) == 0 || s.db == nil {
		return nil, nil
	}

	query, args, err := s.buildQuery(keywords, opts)
	if err != nil {
		s.logger.Error("Warehouse query construction failed", "error", err)
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.avail.markDown()
		s.logger.Warn("Warehouse query failed, marking strategy down", "error", err)
		return nil, nil
	}
	defer rows.Close()

	var candidates []types.ArticleCandidate
	for rows.Next() {
		var (
			docURL     string
			sourceName sql.NullString
			partDate   sql.NullTime
			tone       sql.NullString
			locations  sql.NullString
			themes     sql.NullString
		)
		if err := rows.Scan(&docURL, &sourceName, &partDate, &tone, &locations, &themes); err != nil {
			// Offending row skipped, siblings unaffected.
			s.logger.Debug("Warehouse row scan failed", "error", err)
			continue
		}
		if docURL == "" {
			continue
		}

		candidate := types.ArticleCandidate{
			URL:          docURL,
			SourceDomain: sourceName.String,
			ToneScore:    parseTone(tone.String),
			RawLocations: locations.String,
			RawThemes:    themes.String,
			Country:      ExtractCountry(locations.String, opts.Countries),
		}
		if partDate.Valid {
			d := partDate.Time
			candidate.PublishedDate = &d
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("Warehouse row iteration failed", "error", err)
	}

	return candidates, nil
}

// buildQuery assembles the warehouse SQL. Keywords match the URL with spaces
// replaced by % wildcards (URLs hyphenate words); the date window is
// inclusive and centered on the event date; the trusted-domain allowlist and
// the social/video exclusions are AND-ed into every query.
func (s *MetadataStrategy) buildQuery(keywords []string, opts Options) (string, []interface{}, error) {
	start, end := s.DateWindow(opts.EventDate)

	builder := sq.Select(
		"document_identifier",
		"source_name",
		"partition_date",
		"tone",
		"locations",
		"themes",
	).
		From(s.table).
		Where(sq.GtOrEq{"partition_date": start}).
		Where(sq.LtOrEq{"partition_date": end}).
		Where(sq.NotEq{"document_identifier": nil})

	keywordOr := make(sq.Or, 0, len(keywords))
	for _, kw := range keywords {
		pattern := "%" + strings.ReplaceAll(strings.ToLower(kw), " ", "%") + "%"
		keywordOr = append(keywordOr, sq.Like{"LOWER(document_identifier)": pattern})
	}
	builder = builder.Where(keywordOr)

	if len(opts.Countries) > 0 {
		countryOr := make(sq.Or, 0, len(opts.Countries))
		for _, c := range opts.Countries {
			countryOr = append(countryOr, sq.Like{"locations": "%#" + strings.ToUpper(c) + "#%"})
		}
		builder = builder.Where(countryOr)
	}

	if len(s.trusted) > 0 {
		builder = builder.Where(sq.Eq{"source_name": s.trusted})
	}
	if len(s.excluded) > 0 {
		builder = builder.Where(sq.NotEq{"source_name": s.excluded})
	}

	return builder.
		OrderBy("partition_date DESC").
		Limit(uint64(s.maxResults)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// DateWindow returns the inclusive [start, end] bounds of the warehouse
// query, windowDays either side of the event date (or now when absent).
func (s *MetadataStrategy) DateWindow(eventDate *time.Time) (time.Time, time.Time) {
	center := time.Now().UTC()
	if eventDate != nil {
		center = eventDate.UTC()
	}
	center = center.Truncate(24 * time.Hour)

	start := center.AddDate(0, 0, -s.windowDays)
	end := center.AddDate(0, 0, s.windowDays)
	return start, end
}

// parseTone takes the first value of the comma-separated tone column, the
// overall sentiment polarity. Anything unparseable defaults to 0.
func parseTone(tone string) float64 {
	if tone == "" {
		return 0
	}
	first := tone
	if idx := strings.Index(tone, ","); idx >= 0 {
		first = tone[:idx]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0
	}
	return v
}

// ExtractCountry pulls the ISO code out of a semicolon-delimited locations
// field whose entries follow type#name#ISO#... . Entries matching a target
// country win; otherwise the first entry with a code is used.
func ExtractCountry(locations string, targets []string) string {
	if locations == "" {
		return "Unknown"
	}

	wanted := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		wanted[strings.ToUpper(t)] = struct{}{}
	}

	first := ""
	for _, entry := range strings.Split(locations, ";") {
		parts := strings.Split(entry, "#")
		if len(parts) < 3 {
			continue
		}
		code := strings.TrimSpace(parts[2])
		if code == "" {
			continue
		}
		if _, ok := wanted[strings.ToUpper(code)]; ok {
			return strings.ToUpper(code)
		}
		if first == "" {
			first = strings.ToUpper(code)
		}
	}

	if first != "" {
		return first
	}
	return "Unknown"
}
