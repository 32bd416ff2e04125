package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rishabh/certdeck/internal/quizstats"
)

// AggregateRepo persists quiz aggregates. Implements
// quizstats.AggregateStore.
type AggregateRepo struct {
	db *sqlx.DB
}

var _ quizstats.AggregateStore = (*AggregateRepo)(nil)

// Get returns the aggregate for one target, or nil if the learner has
// never completed a quiz on it.
func (r *AggregateRepo) Get(ctx context.Context, learnerID string, kind quizstats.TargetKind, targetID string) (*quizstats.Aggregate, error) {
	return getAggregate(ctx, r.db, learnerID, kind, targetID)
}

// GetBatch returns card-level aggregates for a card-id set in a single
// query, keyed by card ID.
func (r *AggregateRepo) GetBatch(ctx context.Context, learnerID string, cardIDs []string) (map[string]*quizstats.Aggregate, error) {
	result := make(map[string]*quizstats.Aggregate, len(cardIDs))
	if len(cardIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM quiz_aggregates WHERE learner_id = ? AND target_kind = ? AND target_id IN (?)`,
		learnerID, quizstats.TargetCard, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("build aggregate query: %w", err)
	}

	var aggs []quizstats.Aggregate
	if err := r.db.SelectContext(ctx, &aggs, query, args...); err != nil {
		return nil, fmt.Errorf("load quiz aggregates: %w", err)
	}

	for i := range aggs {
		result[aggs[i].TargetID] = &aggs[i]
	}
	return result, nil
}

// Update loads the aggregate (initializing a zeroed one if absent),
// applies fn, and writes the result back inside one transaction. WAL
// plus the busy timeout serialize concurrent writers, so counter
// increments are never lost.
func (r *AggregateRepo) Update(ctx context.Context, learnerID string, kind quizstats.TargetKind, targetID string, fn func(*quizstats.Aggregate)) (*quizstats.Aggregate, error) {
	var result *quizstats.Aggregate
	err := runInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		agg, err := getAggregate(ctx, tx, learnerID, kind, targetID)
		if err != nil {
			return err
		}
		if agg == nil {
			agg = &quizstats.Aggregate{
				LearnerID:  learnerID,
				TargetKind: kind,
				TargetID:   targetID,
			}
		}

		fn(agg)

		_, err = tx.ExecContext(ctx,
			`INSERT INTO quiz_aggregates (learner_id, target_kind, target_id, times_taken,
				total_questions, total_correct, average_score, best_score, last_score,
				last_taken, status, mastery_percentage)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(learner_id, target_kind, target_id) DO UPDATE SET
				times_taken = excluded.times_taken,
				total_questions = excluded.total_questions,
				total_correct = excluded.total_correct,
				average_score = excluded.average_score,
				best_score = excluded.best_score,
				last_score = excluded.last_score,
				last_taken = excluded.last_taken,
				status = excluded.status,
				mastery_percentage = excluded.mastery_percentage`,
			agg.LearnerID, agg.TargetKind, agg.TargetID, agg.TimesTaken,
			agg.TotalQuestions, agg.TotalCorrect, agg.AverageScore, agg.BestScore,
			agg.LastScore, agg.LastTaken, agg.Status, agg.MasteryPercentage)
		if err != nil {
			return fmt.Errorf("upsert quiz aggregate: %w", err)
		}

		result = agg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// getAggregate works against either the pool or an open transaction.
func getAggregate(ctx context.Context, q sqlx.QueryerContext, learnerID string, kind quizstats.TargetKind, targetID string) (*quizstats.Aggregate, error) {
	var agg quizstats.Aggregate
	err := sqlx.GetContext(ctx, q, &agg,
		`SELECT * FROM quiz_aggregates WHERE learner_id = ? AND target_kind = ? AND target_id = ?`,
		learnerID, kind, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz aggregate: %w", err)
	}
	return &agg, nil
}
