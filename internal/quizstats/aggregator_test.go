package quizstats

import (
	"context"
	"testing"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
)

// memAggregateStore implements AggregateStore in memory for tests.
type memAggregateStore struct {
	rows map[string]*Aggregate
}

func newMemAggregateStore() *memAggregateStore {
	return &memAggregateStore{rows: make(map[string]*Aggregate)}
}

func aggKey(learnerID string, kind TargetKind, targetID string) string {
	return learnerID + "|" + string(kind) + "|" + targetID
}

func (m *memAggregateStore) Get(_ context.Context, learnerID string, kind TargetKind, targetID string) (*Aggregate, error) {
	return m.rows[aggKey(learnerID, kind, targetID)], nil
}

func (m *memAggregateStore) GetBatch(_ context.Context, learnerID string, cardIDs []string) (map[string]*Aggregate, error) {
	result := make(map[string]*Aggregate)
	for _, id := range cardIDs {
		if a, ok := m.rows[aggKey(learnerID, TargetCard, id)]; ok {
			result[id] = a
		}
	}
	return result, nil
}

func (m *memAggregateStore) Update(_ context.Context, learnerID string, kind TargetKind, targetID string, fn func(*Aggregate)) (*Aggregate, error) {
	key := aggKey(learnerID, kind, targetID)
	agg := m.rows[key]
	if agg == nil {
		agg = &Aggregate{LearnerID: learnerID, TargetKind: kind, TargetID: targetID}
	}
	fn(agg)
	m.rows[key] = agg
	return agg, nil
}

func TestRecordCompletionValidation(t *testing.T) {
	g := NewAggregator(newMemAggregateStore())
	ctx := context.Background()
	now := time.Now()

	tests := []struct {
		name    string
		correct int
		total   int
	}{
		{"zero total", 0, 0},
		{"negative total", 5, -1},
		{"negative correct", -1, 10},
		{"correct above total", 11, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.RecordCompletion(ctx, "l1", TargetCard, "c1", tt.correct, tt.total, now)
			if err == nil {
				t.Fatalf("expected error for correct=%d total=%d", tt.correct, tt.total)
			}
			if !domain.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}

	// Nothing may have been written.
	agg, _ := g.aggregates.Get(ctx, "l1", TargetCard, "c1")
	if agg != nil {
		t.Error("validation failure must not write an aggregate")
	}
}

func TestRecordCompletionScenario(t *testing.T) {
	// 8/10 then 10/10: learning first (best < 90), mastered after.
	g := NewAggregator(newMemAggregateStore())
	ctx := context.Background()
	now := time.Now()

	agg, err := g.RecordCompletion(ctx, "l1", TargetCard, "y", 8, 10, now)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if agg.AverageScore != 80 || agg.BestScore != 80 {
		t.Errorf("after first: average = %v best = %v, want 80/80", agg.AverageScore, agg.BestScore)
	}
	if agg.Status != StatusLearning {
		t.Errorf("after first: status = %v, want learning", agg.Status)
	}

	agg, err = g.RecordCompletion(ctx, "l1", TargetCard, "y", 10, 10, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if agg.AverageScore != 90 {
		t.Errorf("after second: average = %v, want 90", agg.AverageScore)
	}
	if agg.BestScore != 100 {
		t.Errorf("after second: best = %v, want 100", agg.BestScore)
	}
	if agg.Status != StatusMastered {
		t.Errorf("after second: status = %v, want mastered", agg.Status)
	}
	if agg.TimesTaken != 2 {
		t.Errorf("times taken = %d, want 2", agg.TimesTaken)
	}
	if agg.LastScore != 100 {
		t.Errorf("last score = %v, want 100", agg.LastScore)
	}
}

func TestRecordCompletionCounterInvariant(t *testing.T) {
	g := NewAggregator(newMemAggregateStore())
	ctx := context.Background()
	now := time.Now()

	sessions := []struct{ correct, total int }{
		{0, 5}, {5, 5}, {3, 7}, {7, 10}, {1, 1},
	}
	for _, s := range sessions {
		agg, err := g.RecordCompletion(ctx, "l1", TargetCard, "c1", s.correct, s.total, now)
		if err != nil {
			t.Fatalf("completion %d/%d: %v", s.correct, s.total, err)
		}
		if agg.TotalCorrect > agg.TotalQuestions {
			t.Fatalf("invariant violated: correct %d > questions %d", agg.TotalCorrect, agg.TotalQuestions)
		}
		wantAvg := percent(agg.TotalCorrect, agg.TotalQuestions)
		if agg.AverageScore != wantAvg {
			t.Errorf("average %v inconsistent with counters, want %v", agg.AverageScore, wantAvg)
		}
	}
}

func TestRecordCompletionDeckLevel(t *testing.T) {
	g := NewAggregator(newMemAggregateStore())
	ctx := context.Background()
	now := time.Now()

	agg, err := g.RecordCompletion(ctx, "l1", TargetDeck, "d1", 2, 3, now)
	if err != nil {
		t.Fatalf("deck completion: %v", err)
	}
	if agg.MasteryPercentage != 66.67 {
		t.Errorf("mastery percentage = %v, want 66.67", agg.MasteryPercentage)
	}
	// Deck targets carry no discrete classification.
	if agg.Status != "" {
		t.Errorf("deck status = %q, want empty", agg.Status)
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 7, 14.29},
		{10, 10, 100},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("percent(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}
