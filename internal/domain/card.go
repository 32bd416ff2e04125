// Package domain holds the entities shared by the study engine:
// cards, decks, classes, and the error taxonomy the engine surfaces.
package domain

import "time"

// Card is a single question/answer study unit.
// The selection engine treats unpublished cards as invisible.
type Card struct {
	ID        string    `db:"id"`
	DeckID    string    `db:"deck_id"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	Position  int       `db:"position"`
	Published bool      `db:"published"`
	CreatedAt time.Time `db:"created_at"`
}

// Deck is an ordered collection of cards.
type Deck struct {
	ID          string    `db:"id"`
	ClassID     string    `db:"class_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Position    int       `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

// Class is a course-level grouping of decks.
type Class struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
