package quizstats

import (
	"context"
	"fmt"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
)

// AggregateStore persists quiz aggregates. Update must run the
// read-modify-write as one atomic unit per (learner, kind, target)
// row; concurrent completions may not lose counter increments.
type AggregateStore interface {
	// Get returns the aggregate for one target, or nil if the learner
	// has never completed a quiz on it.
	Get(ctx context.Context, learnerID string, kind TargetKind, targetID string) (*Aggregate, error)

	// GetBatch returns card-level aggregates for a card-id set in a
	// single query, keyed by card ID.
	GetBatch(ctx context.Context, learnerID string, cardIDs []string) (map[string]*Aggregate, error)

	// Update loads the aggregate (initializing a zeroed one if absent),
	// applies fn, and writes the result back, all in one transaction.
	Update(ctx context.Context, learnerID string, kind TargetKind, targetID string, fn func(*Aggregate)) (*Aggregate, error)
}

// Aggregator folds completed quiz sessions into rolling statistics.
type Aggregator struct {
	aggregates AggregateStore
}

// NewAggregator creates an Aggregator backed by the given store.
func NewAggregator(aggregates AggregateStore) *Aggregator {
	return &Aggregator{aggregates: aggregates}
}

// RecordCompletion applies one completed quiz session to the target's
// aggregate and returns the updated row. Card-level targets carry the
// recomputed Status; deck-level targets the recomputed
// MasteryPercentage. A non-positive total or a correct count outside
// [0, total] fails with a ValidationError and writes nothing.
func (g *Aggregator) RecordCompletion(ctx context.Context, learnerID string, kind TargetKind, targetID string, correct, total int, now time.Time) (*Aggregate, error) {
	if total <= 0 {
		return nil, domain.NewValidationError("question total", "%d must be positive", total)
	}
	if correct < 0 || correct > total {
		return nil, domain.NewValidationError("correct count", "%d is outside [0, %d]", correct, total)
	}

	agg, err := g.aggregates.Update(ctx, learnerID, kind, targetID, func(a *Aggregate) {
		a.apply(correct, total, now)
	})
	if err != nil {
		return nil, fmt.Errorf("update quiz aggregate: %w", err)
	}
	return agg, nil
}
