package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rishabh/certdeck/internal/mastery"
)

// SnapshotRepo persists mastery snapshots. Implements
// mastery.SnapshotStore.
type SnapshotRepo struct {
	db *sqlx.DB
}

var _ mastery.SnapshotStore = (*SnapshotRepo)(nil)

// Get returns the snapshot for one (learner, card) pair, or nil if the
// card has never been studied.
func (r *SnapshotRepo) Get(ctx context.Context, learnerID, cardID string) (*mastery.Snapshot, error) {
	var snap mastery.Snapshot
	err := r.db.GetContext(ctx, &snap,
		`SELECT * FROM mastery_snapshots WHERE learner_id = ? AND card_id = ?`,
		learnerID, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load mastery snapshot: %w", err)
	}
	return &snap, nil
}

// GetBatch returns snapshots for a card-id set in a single query,
// keyed by card ID.
func (r *SnapshotRepo) GetBatch(ctx context.Context, learnerID string, cardIDs []string) (map[string]*mastery.Snapshot, error) {
	result := make(map[string]*mastery.Snapshot, len(cardIDs))
	if len(cardIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM mastery_snapshots WHERE learner_id = ? AND card_id IN (?)`,
		learnerID, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("build snapshot query: %w", err)
	}

	var snaps []mastery.Snapshot
	if err := r.db.SelectContext(ctx, &snaps, query, args...); err != nil {
		return nil, fmt.Errorf("load mastery snapshots: %w", err)
	}

	for i := range snaps {
		result[snaps[i].CardID] = &snaps[i]
	}
	return result, nil
}

// Upsert writes a snapshot, creating the row on first rating.
func (r *SnapshotRepo) Upsert(ctx context.Context, snap *mastery.Snapshot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mastery_snapshots (learner_id, card_id, confidence_level, last_seen, next_review_due)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(learner_id, card_id) DO UPDATE SET
			confidence_level = excluded.confidence_level,
			last_seen = excluded.last_seen,
			next_review_due = excluded.next_review_due`,
		snap.LearnerID, snap.CardID, snap.ConfidenceLevel, snap.LastSeen, snap.NextReviewDue)
	if err != nil {
		return fmt.Errorf("upsert mastery snapshot: %w", err)
	}
	return nil
}
