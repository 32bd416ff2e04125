// Package session orchestrates study sessions: it loads the candidate
// pool and mastery snapshots, runs the card selector, and routes
// rating and quiz events into the mastery tracker and quiz aggregator.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/mastery"
	"github.com/rishabh/certdeck/internal/quizstats"
	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/store"
)

// Scope names the card pool for a session: one deck, or one class
// optionally restricted to specific decks.
type Scope struct {
	DeckID  string
	ClassID string
	// DeckIDs restricts a class scope to specific decks. Ignored for
	// deck scopes.
	DeckIDs []string
}

// CardSource loads published card pools. Implemented by store.DeckRepo.
type CardSource interface {
	PublishedByDeck(ctx context.Context, deckID string) ([]domain.Card, error)
	PublishedByClass(ctx context.Context, classID string, deckIDs []string) ([]domain.Card, error)
}

// EventSink records study events for history and stats. May be nil.
type EventSink interface {
	AppendRating(ctx context.Context, data store.RatingEventData) error
	AppendQuiz(ctx context.Context, data store.QuizEventData) error
}

// StudySession is an ordered sequence of cards ready to present.
type StudySession struct {
	LearnerID string
	Mode      selection.Mode
	Cards     []domain.Card
	StartedAt time.Time
}

// Service is the study engine's handler-facing surface.
type Service struct {
	cards      CardSource
	snapshots  mastery.SnapshotStore
	tracker    *mastery.Tracker
	aggregator *quizstats.Aggregator
	events     EventSink
	now        func() time.Time
}

// NewService wires the study engine together. events may be nil to
// skip history logging.
func NewService(cards CardSource, snapshots mastery.SnapshotStore, aggregates quizstats.AggregateStore, events EventSink) *Service {
	return &Service{
		cards:      cards,
		snapshots:  snapshots,
		tracker:    mastery.NewTracker(snapshots),
		aggregator: quizstats.NewAggregator(aggregates),
		events:     events,
		now:        time.Now,
	}
}

// Start builds an ordered study session for the scope. The pool and
// snapshots are each loaded in one batched read; selection itself is
// pure. Returns a NotFoundError if the scope does not exist or has no
// published cards.
func (s *Service) Start(ctx context.Context, learnerID string, scope Scope, mode selection.Mode) (*StudySession, error) {
	pool, err := s.loadPool(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, scope.notFound()
	}

	ids := make([]string, len(pool))
	for i, c := range pool {
		ids[i] = c.ID
	}
	snaps, err := s.snapshots.GetBatch(ctx, learnerID, ids)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	now := s.now()
	return &StudySession{
		LearnerID: learnerID,
		Mode:      mode,
		Cards:     selection.Select(pool, snaps, mode, now),
		StartedAt: now,
	}, nil
}

func (s *Service) loadPool(ctx context.Context, scope Scope) ([]domain.Card, error) {
	if scope.DeckID != "" {
		return s.cards.PublishedByDeck(ctx, scope.DeckID)
	}
	return s.cards.PublishedByClass(ctx, scope.ClassID, scope.DeckIDs)
}

func (sc Scope) notFound() error {
	if sc.DeckID != "" {
		return domain.NewNotFoundError("deck", sc.DeckID)
	}
	return domain.NewNotFoundError("class", sc.ClassID)
}

// RecordRating stores a confidence rating and appends a rating event.
func (s *Service) RecordRating(ctx context.Context, learnerID, cardID string, level int) (*mastery.Snapshot, error) {
	now := s.now()
	snap, err := s.tracker.RecordRating(ctx, learnerID, cardID, level, now)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		err := s.events.AppendRating(ctx, store.RatingEventData{
			LearnerID: learnerID,
			CardID:    cardID,
			Level:     level,
			Timestamp: now,
		})
		if err != nil {
			return nil, fmt.Errorf("log rating event: %w", err)
		}
	}
	return snap, nil
}

// RecordQuiz folds a completed quiz session into the target's
// aggregate and appends a quiz event.
func (s *Service) RecordQuiz(ctx context.Context, learnerID string, kind quizstats.TargetKind, targetID string, correct, total int) (*quizstats.Aggregate, error) {
	now := s.now()
	agg, err := s.aggregator.RecordCompletion(ctx, learnerID, kind, targetID, correct, total, now)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		err := s.events.AppendQuiz(ctx, store.QuizEventData{
			LearnerID: learnerID,
			TargetID:  targetID,
			Correct:   correct,
			Total:     total,
			Timestamp: now,
		})
		if err != nil {
			return nil, fmt.Errorf("log quiz event: %w", err)
		}
	}
	return agg, nil
}
