// Package mastery tracks per-learner, per-card mastery signals:
// the confidence self-rating, when the card was last seen, and the
// externally supplied next-review-due timestamp.
package mastery

import "time"

// Confidence bounds for a learner's 1-5 self-assessment.
const (
	MinConfidence = 1
	MaxConfidence = 5
)

// ReviewThreshold is the confidence level at or above which a card is
// considered known well enough to drop out of progressive study.
const ReviewThreshold = 4

// Snapshot holds the mastery signals for one (learner, card) pair.
// All three signal fields are optional: a nil ConfidenceLevel means the
// card has never been rated, a nil LastSeen that it has never been
// shown, and a nil NextReviewDue that no review has been scheduled.
type Snapshot struct {
	LearnerID       string     `db:"learner_id"`
	CardID          string     `db:"card_id"`
	ConfidenceLevel *int       `db:"confidence_level"`
	LastSeen        *time.Time `db:"last_seen"`
	NextReviewDue   *time.Time `db:"next_review_due"`
}

// Rated reports whether the learner has ever rated this card.
func (s *Snapshot) Rated() bool {
	return s.ConfidenceLevel != nil
}

// Confidence returns the confidence level, or 0 if the card has never
// been rated. The zero sorts below every real rating.
func (s *Snapshot) Confidence() int {
	if s.ConfidenceLevel == nil {
		return 0
	}
	return *s.ConfidenceLevel
}

// SeenAt returns the last-seen time, or the zero time if the card has
// never been shown.
func (s *Snapshot) SeenAt() time.Time {
	if s.LastSeen == nil {
		return time.Time{}
	}
	return *s.LastSeen
}

// Due reports whether the card has a scheduled review at or before now.
// Cards with no scheduled review are never due.
func (s *Snapshot) Due(now time.Time) bool {
	if s.NextReviewDue == nil {
		return false
	}
	return !now.Before(*s.NextReviewDue)
}
