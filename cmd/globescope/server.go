package globescope

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	scope "github.com/soundprediction/globescope"
	"github.com/soundprediction/globescope/pkg/config"
	"github.com/soundprediction/globescope/pkg/logger"
	"github.com/soundprediction/globescope/pkg/server"
	"github.com/soundprediction/globescope/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the GlobeScope HTTP server",
	Long: `Start the GlobeScope HTTP server to provide REST API access to the
news search pipeline.

The server provides endpoints for:
- Coordinated search across all configured backends
- Per-country analysis reports
- Media outlet registry lookups
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "release", "Server mode (debug, release, test)")

	// Warehouse flags
	serverCmd.Flags().String("warehouse-dsn", "", "Metadata warehouse DSN")
	serverCmd.Flags().String("warehouse-driver", "postgres", "Metadata warehouse driver")

	// Embedding flags
	serverCmd.Flags().String("embedding-model", "text-embedding-3-small", "Embedding model")
	serverCmd.Flags().String("embedding-api-key", "", "Embedding API key")
	serverCmd.Flags().String("embedding-base-url", "", "Embedding base URL")

	// Media registry flags
	serverCmd.Flags().String("media-registry", "", "Path to a YAML media registry file")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for error telemetry parquet files")
	serverCmd.Flags().String("telemetry-db-url", "", "Postgres URL for error telemetry persistence")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Telemetry.ParquetPath != "" {
		parquetHandler, err := telemetry.NewParquetHandler(log.Handler(), cfg.Telemetry.ParquetPath)
		if err != nil {
			log.Warn("Failed to initialize parquet telemetry", "error", err)
		} else {
			defer parquetHandler.Close()
			log = slog.New(parquetHandler)
		}
	}

	if cfg.Telemetry.DbURL != "" {
		telemetryDB, err := sql.Open("postgres", cfg.Telemetry.DbURL)
		if err != nil {
			log.Warn("Failed to open telemetry database", "error", err)
		} else {
			defer telemetryDB.Close()
			sqlHandler, err := telemetry.NewSQLHandler(log.Handler(), telemetryDB)
			if err != nil {
				log.Warn("Failed to initialize database telemetry", "error", err)
			} else {
				log = slog.New(sqlHandler)
			}
		}
	}

	client, err := scope.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer client.Close()

	// Create and setup server
	srv := server.New(cfg, client, log)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("Received shutdown signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Info("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Warehouse flags
	if cmd.Flags().Changed("warehouse-dsn") {
		cfg.Warehouse.DSN, _ = cmd.Flags().GetString("warehouse-dsn")
	}
	if cmd.Flags().Changed("warehouse-driver") {
		cfg.Warehouse.Driver, _ = cmd.Flags().GetString("warehouse-driver")
	}

	// Embedding flags
	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("embedding-api-key") {
		cfg.Embedding.APIKey, _ = cmd.Flags().GetString("embedding-api-key")
	}
	if cmd.Flags().Changed("embedding-base-url") {
		cfg.Embedding.BaseURL, _ = cmd.Flags().GetString("embedding-base-url")
	}

	// Media registry flags
	if cmd.Flags().Changed("media-registry") {
		cfg.Media.RegistryPath, _ = cmd.Flags().GetString("media-registry")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
	if cmd.Flags().Changed("telemetry-db-url") {
		cfg.Telemetry.DbURL, _ = cmd.Flags().GetString("telemetry-db-url")
	}
}
