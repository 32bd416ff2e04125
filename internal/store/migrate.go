package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrate creates any missing tables. Statements are idempotent so
// Open can run them on every start.
func migrate(db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS classes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			class_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(class_id) REFERENCES classes(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			published INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(deck_id) REFERENCES decks(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS mastery_snapshots (
			learner_id TEXT NOT NULL,
			card_id TEXT NOT NULL,
			confidence_level INTEGER,
			last_seen DATETIME,
			next_review_due DATETIME,
			PRIMARY KEY(learner_id, card_id),
			FOREIGN KEY(card_id) REFERENCES cards(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_aggregates (
			learner_id TEXT NOT NULL,
			target_kind TEXT NOT NULL CHECK(target_kind IN ('card','deck')),
			target_id TEXT NOT NULL,
			times_taken INTEGER NOT NULL DEFAULT 0,
			total_questions INTEGER NOT NULL DEFAULT 0,
			total_correct INTEGER NOT NULL DEFAULT 0,
			average_score REAL NOT NULL DEFAULT 0,
			best_score REAL NOT NULL DEFAULT 0,
			last_score REAL NOT NULL DEFAULT 0,
			last_taken DATETIME,
			status TEXT NOT NULL DEFAULT 'new',
			mastery_percentage REAL NOT NULL DEFAULT 0,
			PRIMARY KEY(learner_id, target_kind, target_id),
			CHECK(total_correct <= total_questions)
		)`,
		`CREATE TABLE IF NOT EXISTS study_events (
			sequence INTEGER PRIMARY KEY AUTOINCREMENT,
			learner_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('rating','quiz')),
			target_id TEXT NOT NULL,
			confidence_level INTEGER,
			correct INTEGER,
			total INTEGER,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards(deck_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_events_learner ON study_events(learner_id, kind)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
