package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// SQLHandler is a slog.Handler that writes error logs to a SQL database.
// It shares the warehouse connection, so telemetry lands next to the data
// the failing queries were running against.
type SQLHandler struct {
	next      slog.Handler
	db        *sql.DB
	tableName string
}

// NewSQLHandler creates a new SQLHandler using an existing DB connection
func NewSQLHandler(next slog.Handler, db *sql.DB) (*SQLHandler, error) {
	h := &SQLHandler{
		next:      next,
		db:        db,
		tableName: "telemetry_logs",
	}

	if err := h.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure telemetry table: %w", err)
	}

	return h, nil
}

func (h *SQLHandler) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(36) PRIMARY KEY,
			timestamp TIMESTAMPTZ,
			level VARCHAR(10),
			message TEXT,
			request_id VARCHAR(255),
			request_source VARCHAR(255),
			source_file VARCHAR(255),
			line_number INT,
			attributes TEXT
		)`, h.tableName)

	_, err := h.db.Exec(query)
	return err
}

// Enabled implements slog.Handler
func (h *SQLHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler
func (h *SQLHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.next.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level < slog.LevelError {
		return nil
	}

	record := newRecord(ctx, r)

	query := fmt.Sprintf(`
		INSERT INTO %s (id, timestamp, level, message, request_id, request_source, source_file, line_number, attributes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, h.tableName)

	if _, err := h.db.ExecContext(ctx, query,
		record.ID, record.Timestamp, record.Level, record.Message,
		record.RequestID, record.RequestSource,
		record.SourceFile, record.LineNumber, record.Attributes,
	); err != nil {
		// Telemetry must never take down the caller.
		fmt.Printf("Failed to write telemetry log to database: %v\n", err)
	}

	return nil
}

// WithAttrs implements slog.Handler
func (h *SQLHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SQLHandler{
		next:      h.next.WithAttrs(attrs),
		db:        h.db,
		tableName: h.tableName,
	}
}

// WithGroup implements slog.Handler
func (h *SQLHandler) WithGroup(name string) slog.Handler {
	return &SQLHandler{
		next:      h.next.WithGroup(name),
		db:        h.db,
		tableName: h.tableName,
	}
}
