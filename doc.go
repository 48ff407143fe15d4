// Package globescope retrieves, deduplicates, and relevance-filters
// international news coverage of a topic across multiple search backends,
// then enriches surviving articles with fetched body text.
//
// The pipeline runs a full-text document search as the primary strategy and
// falls back to a metadata-only historical warehouse when the primary is
// unavailable or returns nothing. Candidates are deduplicated by normalized
// URL, scored against a topic embedding, capped per country, and enriched
// concurrently by a bounded worker pool.
//
// # Basic Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := globescope.NewClient(cfg, slog.Default())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	params := types.SearchParams{
//		Keywords:        []string{"semiconductor export controls"},
//		TargetCountries: []string{"US", "KR", "JP"},
//	}
//	report, cached := client.Analyze(ctx, params, "semiconductor export controls", nil)
//
// Each country in the report maps to a bucket of relevance-ranked, enriched
// articles. An empty bucket carries a note; no outcome of a search is ever a
// fatal error.
package globescope
