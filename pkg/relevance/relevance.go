// Package relevance scores article candidates against a topic using
// embedding cosine similarity and filters out low-scoring ones.
package relevance

import (
	"context"
	"log/slog"

	"github.com/soundprediction/globescope/pkg/embedder"
	"github.com/soundprediction/globescope/pkg/utils"
)

// Filter scores titles against a topic reference embedding.
//
// Failure semantics are deliberately asymmetric: when the topic embedding
// itself is unavailable the filter fails open (everything passes, score 1.0)
// because relevance filtering is a quality enhancement, not a correctness
// gate. When an individual title embedding fails, that title fails closed
// (score 0.0) so a flaky provider does not let unscored junk through at the
// fail-open rate.
type Filter struct {
	embedder  embedder.Client
	threshold float64
	logger    *slog.Logger
}

// NewFilter creates a filter with the given acceptance threshold.
func NewFilter(client embedder.Client, threshold float64, logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		embedder:  client,
		threshold: threshold,
		logger:    logger,
	}
}

// TopicVector computes the reference embedding for a topic once per run.
// Returns nil when the provider fails; callers pass the nil through to Score
// which then fails open.
func (f *Filter) TopicVector(ctx context.Context, topic string) []float32 {
	if f.embedder == nil || topic == "" {
		return nil
	}

	vec, err := f.embedder.EmbedSingle(ctx, topic)
	if err != nil {
		f.logger.Warn("Topic embedding failed, relevance filter will pass everything",
			"topic", topic, "error", err)
		return nil
	}
	return vec
}

// Score returns the cosine similarity between the title's embedding and the
// topic vector, in [-1, 1]. A nil topic vector scores 1.0; a failed title
// embedding scores 0.0; a zero-norm vector scores 0.0.
func (f *Filter) Score(ctx context.Context, title string, topicVec []float32) float64 {
	if topicVec == nil {
		return 1.0
	}
	if f.embedder == nil {
		return 0.0
	}

	titleVec, err := f.embedder.EmbedSingle(ctx, title)
	if err != nil {
		f.logger.Debug("Title embedding failed", "title", title, "error", err)
		return 0.0
	}

	return utils.CosineSimilarity(titleVec, topicVec)
}

// Accept reports whether a score clears the configured threshold.
func (f *Filter) Accept(score float64) bool {
	return score >= f.threshold
}

// Threshold returns the configured acceptance threshold.
func (f *Filter) Threshold() float64 {
	return f.threshold
}
