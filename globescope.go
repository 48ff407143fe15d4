package globescope

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/soundprediction/globescope/pkg/alert"
	"github.com/soundprediction/globescope/pkg/checkpoint"
	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/dedup"
	"github.com/soundprediction/globescope/pkg/embedder"
	"github.com/soundprediction/globescope/pkg/extract"
	"github.com/soundprediction/globescope/pkg/fetch"
	"github.com/soundprediction/globescope/pkg/media"
	"github.com/soundprediction/globescope/pkg/relevance"
	"github.com/soundprediction/globescope/pkg/report"
	"github.com/soundprediction/globescope/pkg/search"
	"github.com/soundprediction/globescope/pkg/strategy"
	"github.com/soundprediction/globescope/pkg/translate"
	"github.com/soundprediction/globescope/pkg/types"
)

// Client is the top-level entry point. It wires the search coordinator, the
// relevance filter, the enrichment pipeline, and the per-country
// orchestrator from a single Config.
type Client struct {
	coordinator  *search.Coordinator
	orchestrator *report.Orchestrator
	fetcher      *fetch.Fetcher
	filter       *relevance.Filter
	registry     *media.Registry
	cache        *report.Cache
	db           *sql.DB
	embedClient  embedder.Client
	logger       *slog.Logger
}

// NewClient builds a fully wired client. The warehouse connection is opened
// lazily by database/sql; a missing DSN leaves the metadata strategy
// permanently unavailable rather than failing construction, since the
// document strategy alone is a valid deployment.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var db *sql.DB
	if cfg.Warehouse.DSN != "" {
		var err error
		db, err = sql.Open(cfg.Warehouse.Driver, cfg.Warehouse.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open warehouse connection: %w", err)
		}
	} else {
		logger.Warn("No warehouse DSN configured, metadata fallback disabled")
	}

	primary := strategy.NewDocumentStrategy(cfg.DocumentSearch, logger)
	fallback := strategy.NewMetadataStrategy(db, cfg.Warehouse, logger)
	coordinator := search.NewCoordinator(primary, fallback, logger)
	if cfg.Alert.Enabled {
		coordinator.SetAlerter(alert.NewThrottled(alert.NewEmailAlerter(cfg.Alert), time.Hour))
	}

	embedClient := buildEmbedder(cfg, logger)
	filter := relevance.NewFilter(embedClient, cfg.Relevance.Threshold, logger)

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}

	var translator translate.Translator
	if cfg.Translation.Enabled {
		translator = translate.NewOpenAITranslator(cfg.Translation)
	}

	extractor := extract.NewReadabilityExtractor(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, logger)
	fetcher := fetch.NewFetcher(extractor, translator, registry, cfg.Fetch, logger)

	orchestrator := report.NewOrchestrator(coordinator, filter, fetcher, cfg.Relevance.PerCountryCap, logger)
	if cfg.Checkpoint.Enabled && cfg.Checkpoint.Dir != "" {
		store, err := checkpoint.NewStore(cfg.Checkpoint.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open checkpoint store: %w", err)
		}
		orchestrator.SetCheckpointStore(store, cfg.Checkpoint.MaxAttempts,
			time.Duration(cfg.Checkpoint.MaxAgeHours)*time.Hour)
	}

	var cache *report.Cache
	if cfg.Cache.Enabled {
		cache = report.NewCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	}

	return &Client{
		coordinator:  coordinator,
		orchestrator: orchestrator,
		fetcher:      fetcher,
		filter:       filter,
		registry:     registry,
		cache:        cache,
		db:           db,
		embedClient:  embedClient,
		logger:       logger,
	}, nil
}

func buildEmbedder(cfg *config.Config, logger *slog.Logger) embedder.Client {
	var client embedder.Client = embedder.NewOpenAIClient(embedder.Config{
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.Embedding.BaseURL,
	})
	client = embedder.NewRetryClient(client, embedder.DefaultRetryConfig())
	if cfg.CircuitBreaker.Enabled {
		client = embedder.NewCircuitBreakerClient(client, cfg.CircuitBreaker, logger, "embedding")
	}
	return client
}

func buildRegistry(cfg *config.Config, logger *slog.Logger) (*media.Registry, error) {
	if cfg.Media.RegistryPath == "" {
		return media.NewRegistry(), nil
	}
	registry, err := media.NewRegistryFromFile(cfg.Media.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load media registry: %w", err)
	}
	logger.Info("Loaded media registry", "path", cfg.Media.RegistryPath, "outlets", registry.Size())
	return registry, nil
}

// Search runs a single coordinated search without the per-country loop:
// strategy fallback, dedupe, relevance scoring against topic, enrichment.
// An empty result is a valid outcome, not an error.
func (c *Client) Search(ctx context.Context, params types.SearchParams, topic string) ([]types.Article, error) {
	candidates, err := c.coordinator.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	candidates = dedup.Dedupe(candidates)
	if len(candidates) == 0 {
		return nil, nil
	}

	topicVec := c.filter.TopicVector(ctx, topic)
	items := make([]fetch.Item, 0, len(candidates))
	for _, cand := range candidates {
		score := c.filter.Score(ctx, report.ScoringText(cand), topicVec)
		if !c.filter.Accept(score) {
			continue
		}
		items = append(items, fetch.Item{Candidate: cand, Score: score})
	}
	return c.fetcher.Enrich(ctx, items), nil
}

// Analyze runs the full per-country orchestration and returns the keyed
// report. The second return value reports whether the result came from the
// cache.
func (c *Client) Analyze(ctx context.Context, params types.SearchParams, topic string, roles map[string]string) (types.Report, bool) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(params, topic); ok {
			c.logger.Debug("Report served from cache", "topic", topic)
			return cached, true
		}
	}

	rep := c.orchestrator.Run(ctx, params, topic, roles)

	if c.cache != nil {
		c.cache.Put(params, topic, rep)
	}
	return rep, false
}

// AnalyzeResumable runs the orchestration under a named run ID, resuming a
// previously interrupted run when checkpoints are enabled. Without a
// checkpoint store it degrades to a plain Analyze without caching.
func (c *Client) AnalyzeResumable(ctx context.Context, runID string, params types.SearchParams, topic string, roles map[string]string) types.Report {
	return c.orchestrator.RunResumable(ctx, runID, params, topic, roles)
}

// MediaRegistry exposes the outlet registry for lookup endpoints.
func (c *Client) MediaRegistry() *media.Registry {
	return c.registry
}

// Close releases the warehouse connection and the embedding client.
func (c *Client) Close() error {
	var firstErr error
	if c.embedClient != nil {
		if err := c.embedClient.Close(); err != nil {
			firstErr = err
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
