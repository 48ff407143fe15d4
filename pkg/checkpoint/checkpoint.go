// Package checkpoint persists partial orchestration runs so a multi-country
// analysis interrupted by a crash or deploy can resume where it stopped
// instead of re-querying every backend for every country.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soundprediction/globescope/pkg/types"
)

// ErrInvalidRunID is returned when a run ID contains invalid characters
var ErrInvalidRunID = errors.New("invalid run ID: contains path traversal or invalid characters")

// ErrNotFound is returned when no checkpoint exists for a run
var ErrNotFound = errors.New("checkpoint not found")

// RunCheckpoint captures the state of a partially completed orchestration
// run: the countries already processed with their buckets, and the URLs
// already claimed, so resumed countries never double-count an article.
type RunCheckpoint struct {
	RunID string `json:"run_id"`
	Topic string `json:"topic"`

	Params types.SearchParams `json:"params"`

	// Completed holds the bucket for every country already processed.
	Completed types.Report `json:"completed"`

	// SeenURLs carries the pipeline-wide seen set across resume boundaries.
	SeenURLs []string `json:"seen_urls"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	AttemptCount  int       `json:"attempt_count"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewRunCheckpoint creates a checkpoint for a run that has not processed any
// country yet.
func NewRunCheckpoint(runID, topic string, params types.SearchParams) *RunCheckpoint {
	now := time.Now()
	return &RunCheckpoint{
		RunID:         runID,
		Topic:         topic,
		Params:        params.Clone(),
		Completed:     make(types.Report),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

// CanResume reports whether a stored checkpoint is still worth resuming.
// Stale or repeatedly failed runs should start over; their date windows and
// backend state have drifted too far.
func (c *RunCheckpoint) CanResume(maxAttempts int, maxAge time.Duration) bool {
	if maxAttempts > 0 && c.AttemptCount >= maxAttempts {
		return false
	}
	if maxAge > 0 && time.Since(c.CreatedAt) > maxAge {
		return false
	}
	return true
}

// MarkCountry records a finished country and the URLs it claimed.
func (c *RunCheckpoint) MarkCountry(country string, bucket types.CountryBucket, urls []string) {
	c.Completed[country] = bucket
	c.SeenURLs = append(c.SeenURLs, urls...)
	c.LastUpdatedAt = time.Now()
}

// Store reads and writes checkpoints as JSON files in a directory.
type Store struct {
	dir string
}

// NewStore creates the checkpoint directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// validateRunID rejects IDs that could escape the checkpoint directory.
func validateRunID(runID string) error {
	if runID == "" || strings.ContainsAny(runID, "/\\") || strings.Contains(runID, "..") {
		return ErrInvalidRunID
	}
	return nil
}

func (s *Store) path(runID string) string {
	return filepath.Join(s.dir, runID+".json")
}

// Save writes the checkpoint atomically via a temp file rename.
func (s *Store) Save(c *RunCheckpoint) error {
	if err := validateRunID(c.RunID); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmp := s.path(c.RunID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path(c.RunID)); err != nil {
		return fmt.Errorf("commit checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint by run ID.
func (s *Store) Load(runID string) (*RunCheckpoint, error) {
	if err := validateRunID(runID); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var c RunCheckpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	if c.Completed == nil {
		c.Completed = make(types.Report)
	}
	return &c, nil
}

// Delete removes a finished run's checkpoint. Missing files are not errors.
func (s *Store) Delete(runID string) error {
	if err := validateRunID(runID); err != nil {
		return err
	}
	if err := os.Remove(s.path(runID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete checkpoint: %w", err)
	}
	return nil
}

// List returns the run IDs of all stored checkpoints.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
