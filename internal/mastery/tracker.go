package mastery

import (
	"context"
	"fmt"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
)

// SnapshotStore persists mastery snapshots. Implemented by the sqlite
// store; upserts must be atomic per (learner, card) row.
type SnapshotStore interface {
	// Get returns the snapshot for one (learner, card) pair, or nil if
	// the card has never been studied.
	Get(ctx context.Context, learnerID, cardID string) (*Snapshot, error)

	// GetBatch returns snapshots for a card-id set in a single query,
	// keyed by card ID. Missing entries mean "never studied".
	GetBatch(ctx context.Context, learnerID string, cardIDs []string) (map[string]*Snapshot, error)

	// Upsert writes a snapshot, creating the row on first rating.
	Upsert(ctx context.Context, snap *Snapshot) error
}

// Tracker records confidence ratings against mastery snapshots.
type Tracker struct {
	snapshots SnapshotStore
}

// NewTracker creates a Tracker backed by the given snapshot store.
func NewTracker(snapshots SnapshotStore) *Tracker {
	return &Tracker{snapshots: snapshots}
}

// RecordRating upserts the learner's confidence rating for a card and
// stamps LastSeen with now. Levels outside 1-5 fail with a
// ValidationError and write nothing. An existing NextReviewDue is
// carried through untouched; its derivation lives outside this engine.
func (t *Tracker) RecordRating(ctx context.Context, learnerID, cardID string, level int, now time.Time) (*Snapshot, error) {
	if level < MinConfidence || level > MaxConfidence {
		return nil, domain.NewValidationError("confidence level", "%d is outside %d-%d", level, MinConfidence, MaxConfidence)
	}

	snap, err := t.snapshots.Get(ctx, learnerID, cardID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		snap = &Snapshot{LearnerID: learnerID, CardID: cardID}
	}

	snap.ConfidenceLevel = &level
	seen := now
	snap.LastSeen = &seen

	if err := t.snapshots.Upsert(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}
