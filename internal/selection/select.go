package selection

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/rishabh/certdeck/internal/domain"
	"github.com/rishabh/certdeck/internal/mastery"
)

// Select orders the candidate pool for a study session. The pool must
// contain only published cards; snapshots may be missing entries for
// cards never studied. The result is always a fresh slice; neither
// input is mutated.
//
// If the mode's filter leaves nothing to study, the full pool is
// returned in its original order so a session is never empty while the
// pool is not. An empty pool selects to an empty sequence.
func Select(pool []domain.Card, snapshots map[string]*mastery.Snapshot, mode Mode, now time.Time) []domain.Card {
	if len(pool) == 0 {
		return []domain.Card{}
	}

	var cards []domain.Card
	switch mode {
	case ModeRandom:
		cards = shuffled(pool)
	case ModeProgressive:
		cards = progressive(pool, snapshots, now)
	default:
		cards = copyPool(pool)
	}

	if len(cards) == 0 {
		// Everything is known and nothing is due: show the whole pool
		// for review instead of an empty session.
		return copyPool(pool)
	}
	return cards
}

// progressive keeps cards that are unstudied, rated below the review
// threshold, or due for review, ordered most-urgent first:
// unstudied cards, then lowest confidence, then stalest.
func progressive(pool []domain.Card, snapshots map[string]*mastery.Snapshot, now time.Time) []domain.Card {
	var cards []domain.Card
	for _, c := range pool {
		snap := snapshots[c.ID]
		if includeProgressive(snap, now) {
			cards = append(cards, c)
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		si, sj := snapshots[cards[i].ID], snapshots[cards[j].ID]
		if (si == nil) != (sj == nil) {
			return si == nil
		}
		if si == nil {
			return false
		}
		if si.Confidence() != sj.Confidence() {
			return si.Confidence() < sj.Confidence()
		}
		return si.SeenAt().Before(sj.SeenAt())
	})
	return cards
}

func includeProgressive(snap *mastery.Snapshot, now time.Time) bool {
	if snap == nil {
		return true
	}
	if snap.Rated() && snap.Confidence() < mastery.ReviewThreshold {
		return true
	}
	return snap.Due(now)
}

// shuffled returns a fresh Fisher-Yates permutation of the pool.
func shuffled(pool []domain.Card) []domain.Card {
	cards := copyPool(pool)
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

func copyPool(pool []domain.Card) []domain.Card {
	cards := make([]domain.Card, len(pool))
	copy(cards, pool)
	return cards
}
