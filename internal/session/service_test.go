package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/quizstats"
	"github.com/rishabh/certdeck/internal/selection"
	"github.com/rishabh/certdeck/internal/store"
)

func testService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	svc := NewService(s.Decks(), s.Snapshots(), s.Aggregates(), s.Events())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc, s
}

func seedDeck(t *testing.T, s *store.Store) {
	t.Helper()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	class := domain.Class{ID: "sec-plus", Name: "Security+", CreatedAt: base}
	decks := []domain.Deck{
		{ID: "crypto", ClassID: "sec-plus", Name: "Cryptography", Position: 0, CreatedAt: base},
		{ID: "empty", ClassID: "sec-plus", Name: "Placeholder", Position: 1, CreatedAt: base},
	}
	cards := []domain.Card{
		{ID: "c1", DeckID: "crypto", Question: "AES block size?", Answer: "128 bits", Position: 0, Published: true, CreatedAt: base},
		{ID: "c2", DeckID: "crypto", Question: "RSA key exchange?", Answer: "Asymmetric", Position: 1, Published: true, CreatedAt: base},
		{ID: "c3", DeckID: "crypto", Question: "SHA-1 status?", Answer: "Broken", Position: 2, Published: true, CreatedAt: base},
	}
	if err := s.Decks().ImportClass(context.Background(), class, decks, cards); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestStartDeckSession(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)

	sess, err := svc.Start(context.Background(), "alice", Scope{DeckID: "crypto"}, selection.ModeAll)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(sess.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(sess.Cards))
	}
	for i, id := range []string{"c1", "c2", "c3"} {
		if sess.Cards[i].ID != id {
			t.Errorf("cards[%d] = %s, want %s", i, sess.Cards[i].ID, id)
		}
	}
	if sess.Mode != selection.ModeAll {
		t.Errorf("mode = %v, want all", sess.Mode)
	}
	if sess.StartedAt.IsZero() {
		t.Error("StartedAt not set")
	}
}

func TestStartClassSession(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)

	sess, err := svc.Start(context.Background(), "alice", Scope{ClassID: "sec-plus"}, selection.ModeAll)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(sess.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(sess.Cards))
	}
}

func TestStartUnknownScope(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)

	tests := []struct {
		name  string
		scope Scope
	}{
		{"unknown deck", Scope{DeckID: "ghost"}},
		{"unknown class", Scope{ClassID: "ghost"}},
		{"deck with no cards", Scope{DeckID: "empty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Start(context.Background(), "alice", tt.scope, selection.ModeAll)
			if !domain.IsNotFound(err) {
				t.Fatalf("got %v, want NotFoundError", err)
			}
		})
	}
}

func TestProgressiveSkipsConfidentCards(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)
	ctx := context.Background()

	// c1 is rated confident with no pending review, so a progressive
	// session drops it while weak and unstudied cards remain.
	if _, err := svc.RecordRating(ctx, "alice", "c1", 5); err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if _, err := svc.RecordRating(ctx, "alice", "c2", 2); err != nil {
		t.Fatalf("RecordRating: %v", err)
	}

	sess, err := svc.Start(ctx, "alice", Scope{DeckID: "crypto"}, selection.ModeProgressive)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(sess.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(sess.Cards))
	}
	// Unstudied c3 first, then the weak c2.
	if sess.Cards[0].ID != "c3" || sess.Cards[1].ID != "c2" {
		t.Errorf("order = %s, %s, want c3, c2", sess.Cards[0].ID, sess.Cards[1].ID)
	}
}

func TestRecordRatingPersists(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)
	ctx := context.Background()

	snap, err := svc.RecordRating(ctx, "alice", "c1", 4)
	if err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if snap.Confidence() != 4 {
		t.Errorf("confidence = %d, want 4", snap.Confidence())
	}

	stored, err := s.Snapshots().Get(ctx, "alice", "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored == nil || stored.Confidence() != 4 {
		t.Errorf("stored snapshot = %+v, want confidence 4", stored)
	}

	totals, err := s.Events().Totals(ctx, "alice")
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Ratings != 1 {
		t.Errorf("rating events = %d, want 1", totals.Ratings)
	}
}

func TestRecordRatingInvalidLogsNothing(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)
	ctx := context.Background()

	_, err := svc.RecordRating(ctx, "alice", "c1", 9)
	if !domain.IsValidation(err) {
		t.Fatalf("got %v, want ValidationError", err)
	}

	totals, err := s.Events().Totals(ctx, "alice")
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Ratings != 0 {
		t.Errorf("rating events = %d, want 0 after rejected rating", totals.Ratings)
	}
}

func TestRecordQuizPersists(t *testing.T) {
	svc, s := testService(t)
	seedDeck(t, s)
	ctx := context.Background()

	agg, err := svc.RecordQuiz(ctx, "alice", quizstats.TargetDeck, "crypto", 7, 10)
	if err != nil {
		t.Fatalf("RecordQuiz: %v", err)
	}
	if agg.MasteryPercentage != 70 {
		t.Errorf("mastery percentage = %v, want 70", agg.MasteryPercentage)
	}

	totals, err := s.Events().Totals(ctx, "alice")
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Quizzes != 1 {
		t.Errorf("quiz events = %d, want 1", totals.Quizzes)
	}
}

func TestNilEventSink(t *testing.T) {
	_, s := testService(t)
	seedDeck(t, s)

	svc := NewService(s.Decks(), s.Snapshots(), s.Aggregates(), nil)
	if _, err := svc.RecordRating(context.Background(), "alice", "c1", 3); err != nil {
		t.Fatalf("RecordRating without event sink: %v", err)
	}
}
