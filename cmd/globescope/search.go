package globescope

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	scope "github.com/soundprediction/globescope"
	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/logger"
	"github.com/soundprediction/globescope/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [topic]",
	Short: "Run a one-shot search and print the results as JSON",
	Long: `Run the search pipeline once for a topic and print the resulting
articles (or the per-country report, when --countries is given) to stdout
as JSON.

Examples:
  globescope search "semiconductor export controls" --keywords "chip ban,export control"
  globescope search "election results" --countries US,BR --event-date 2026-10-04`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var (
	searchKeywords  string
	searchEntities  string
	searchThemes    string
	searchCountries string
	searchEventDate string
	searchTimeout   int
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "Comma-separated keywords (defaults to the topic)")
	searchCmd.Flags().StringVar(&searchEntities, "entities", "", "Comma-separated entity names")
	searchCmd.Flags().StringVar(&searchThemes, "themes", "", "Comma-separated theme tags")
	searchCmd.Flags().StringVar(&searchCountries, "countries", "", "Comma-separated ISO country codes for a per-country report")
	searchCmd.Flags().StringVar(&searchEventDate, "event-date", "", "Event date (YYYY-MM-DD) centering the warehouse window")
	searchCmd.Flags().IntVar(&searchTimeout, "timeout", 120, "Overall timeout in seconds")
}

func runSearch(cmd *cobra.Command, args []string) error {
	topic := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	client, err := scope.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer client.Close()

	params := types.SearchParams{
		Keywords:        splitList(searchKeywords),
		Entities:        splitList(searchEntities),
		Themes:          splitList(searchThemes),
		TargetCountries: splitList(searchCountries),
	}
	if len(params.Keywords) == 0 {
		params.Keywords = []string{topic}
	}
	if searchEventDate != "" {
		t, err := time.Parse("2006-01-02", searchEventDate)
		if err != nil {
			return fmt.Errorf("invalid --event-date: %w", err)
		}
		params.EventDate = &t
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(searchTimeout)*time.Second)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if len(params.TargetCountries) > 0 {
		rep, _ := client.Analyze(ctx, params, topic, nil)
		return enc.Encode(rep)
	}

	articles, err := client.Search(ctx, params, topic)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if articles == nil {
		articles = []types.Article{}
	}
	return enc.Encode(articles)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
