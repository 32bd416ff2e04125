package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RatingEventData captures a single confidence-rating event.
type RatingEventData struct {
	LearnerID string
	CardID    string
	Level     int
	Timestamp time.Time
}

// QuizEventData captures a single quiz-completion event.
type QuizEventData struct {
	LearnerID string
	TargetID  string
	Correct   int
	Total     int
	Timestamp time.Time
}

// ActivityTotals summarizes a learner's study history for stats views.
type ActivityTotals struct {
	Ratings      int
	Quizzes      int
	LastActivity *time.Time
}

// EventRepo appends study events to the append-only log. Events share
// one table with an autoincrement sequence, so rating and quiz events
// stay globally ordered in arrival order.
type EventRepo struct {
	db *sqlx.DB
}

// AppendRating records a confidence-rating event.
func (r *EventRepo) AppendRating(ctx context.Context, data RatingEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_events (learner_id, kind, target_id, confidence_level, timestamp)
		 VALUES (?, 'rating', ?, ?, ?)`,
		data.LearnerID, data.CardID, data.Level, data.Timestamp)
	if err != nil {
		return fmt.Errorf("append rating event: %w", err)
	}
	return nil
}

// AppendQuiz records a quiz-completion event.
func (r *EventRepo) AppendQuiz(ctx context.Context, data QuizEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_events (learner_id, kind, target_id, correct, total, timestamp)
		 VALUES (?, 'quiz', ?, ?, ?, ?)`,
		data.LearnerID, data.TargetID, data.Correct, data.Total, data.Timestamp)
	if err != nil {
		return fmt.Errorf("append quiz event: %w", err)
	}
	return nil
}

// Totals returns activity counts for one learner.
func (r *EventRepo) Totals(ctx context.Context, learnerID string) (*ActivityTotals, error) {
	var row struct {
		Ratings int `db:"ratings"`
		Quizzes int `db:"quizzes"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT
			COUNT(CASE WHEN kind = 'rating' THEN 1 END) AS ratings,
			COUNT(CASE WHEN kind = 'quiz' THEN 1 END) AS quizzes
		 FROM study_events WHERE learner_id = ?`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load activity totals: %w", err)
	}

	totals := &ActivityTotals{Ratings: row.Ratings, Quizzes: row.Quizzes}

	var last time.Time
	err = r.db.GetContext(ctx, &last,
		`SELECT timestamp FROM study_events WHERE learner_id = ? ORDER BY sequence DESC LIMIT 1`,
		learnerID)
	if err == nil {
		totals.LastActivity = &last
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load last activity: %w", err)
	}
	return totals, nil
}

// Reset deletes all study progress for one learner: events, mastery
// snapshots, and quiz aggregates. Card content is untouched.
func (r *EventRepo) Reset(ctx context.Context, learnerID string) error {
	return runInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM study_events WHERE learner_id = ?`,
			`DELETE FROM mastery_snapshots WHERE learner_id = ?`,
			`DELETE FROM quiz_aggregates WHERE learner_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, learnerID); err != nil {
				return fmt.Errorf("reset learner data: %w", err)
			}
		}
		return nil
	})
}
