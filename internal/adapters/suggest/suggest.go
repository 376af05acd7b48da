// Package suggest integrates the external similarity lookup service
// that proposes existing mappings for newly observed criteria.
package suggest

import (
	"context"

	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// Policy constants applied on top of whatever the service returns.
const (
	// MinSimilarity is the floor below which candidates are never
	// surfaced to the user.
	MinSimilarity = 0.1

	// ScanTopN caps each criterion's candidate list when scanning all
	// unmapped criteria at once.
	ScanTopN = 3
)

// Suggester looks up existing mappings similar to a criterion label.
// Calls are best-effort: a failure means "no suggestions", never a
// report-building failure.
type Suggester interface {
	FindSimilar(ctx context.Context, criterion, eventType string) ([]model.SimilarityCandidate, error)
}

// Filter drops candidates at or below the similarity floor, preserving
// the service's ranking order.
func Filter(candidates []model.SimilarityCandidate) []model.SimilarityCandidate {
	out := make([]model.SimilarityCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity > MinSimilarity {
			out = append(out, c)
		}
	}
	return out
}

// Top returns the first n candidates, assuming service ranking order.
func Top(candidates []model.SimilarityCandidate, n int) []model.SimilarityCandidate {
	if len(candidates) <= n {
		return candidates
	}
	return candidates[:n]
}
