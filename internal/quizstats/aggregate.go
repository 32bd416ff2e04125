// Package quizstats maintains rolling quiz statistics per learner and
// study target, and derives the coarse mastery classification shown in
// progress displays.
package quizstats

import (
	"math"
	"time"
)

// TargetKind distinguishes card-level quizzes from deck-level quizzes.
type TargetKind string

const (
	TargetCard TargetKind = "card"
	TargetDeck TargetKind = "deck"
)

// Status is the coarse mastery classification for card-level targets.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// Aggregate holds rolling quiz statistics for one (learner, target)
// pair. AverageScore is always recomputed from the two counters, never
// mutated independently, so TotalCorrect <= TotalQuestions implies the
// average stays consistent.
type Aggregate struct {
	LearnerID      string     `db:"learner_id"`
	TargetKind     TargetKind `db:"target_kind"`
	TargetID       string     `db:"target_id"`
	TimesTaken     int        `db:"times_taken"`
	TotalQuestions int        `db:"total_questions"`
	TotalCorrect   int        `db:"total_correct"`
	AverageScore   float64    `db:"average_score"`
	BestScore      float64    `db:"best_score"`
	LastScore      float64    `db:"last_score"`
	LastTaken      *time.Time `db:"last_taken"`
	// Status is set for card-level targets only.
	Status Status `db:"status"`
	// MasteryPercentage is the continuous equivalent for deck-level
	// targets: the running average score.
	MasteryPercentage float64 `db:"mastery_percentage"`
}

// apply folds one completed quiz session into the aggregate and
// recomputes every derived field.
func (a *Aggregate) apply(correct, total int, now time.Time) {
	sessionScore := percent(correct, total)

	a.TimesTaken++
	a.TotalQuestions += total
	a.TotalCorrect += correct
	a.AverageScore = percent(a.TotalCorrect, a.TotalQuestions)
	a.BestScore = math.Max(a.BestScore, sessionScore)
	a.LastScore = sessionScore
	taken := now
	a.LastTaken = &taken

	switch a.TargetKind {
	case TargetDeck:
		a.MasteryPercentage = a.AverageScore
	default:
		a.Status = Classify(a.AverageScore, a.BestScore)
	}
}

// percent returns correct/total as a percentage with 2-decimal
// precision.
func percent(correct, total int) float64 {
	raw := float64(correct) / float64(total) * 100
	return math.Round(raw*100) / 100
}
