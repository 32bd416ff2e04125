package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rishabh/certdeck/internal/domain"
)

// DeckRepo provides access to classes, decks, and their cards.
type DeckRepo struct {
	db *sqlx.DB
}

// PublishedByDeck returns the published cards of one deck in storage
// order. Returns a NotFoundError if the deck does not exist.
func (r *DeckRepo) PublishedByDeck(ctx context.Context, deckID string) ([]domain.Card, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM decks WHERE id = ?`, deckID)
	if err != nil {
		return nil, fmt.Errorf("check deck: %w", err)
	}
	if exists == 0 {
		return nil, domain.NewNotFoundError("deck", deckID)
	}

	var cards []domain.Card
	err = r.db.SelectContext(ctx, &cards,
		`SELECT * FROM cards WHERE deck_id = ? AND published = 1 ORDER BY position, created_at`, deckID)
	if err != nil {
		return nil, fmt.Errorf("load deck cards: %w", err)
	}
	return cards, nil
}

// PublishedByClass returns the published cards of every deck in a
// class, optionally restricted to specific deck IDs. Returns a
// NotFoundError if the class does not exist.
func (r *DeckRepo) PublishedByClass(ctx context.Context, classID string, deckIDs []string) ([]domain.Card, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM classes WHERE id = ?`, classID)
	if err != nil {
		return nil, fmt.Errorf("check class: %w", err)
	}
	if exists == 0 {
		return nil, domain.NewNotFoundError("class", classID)
	}

	query := `SELECT c.* FROM cards c
		JOIN decks d ON c.deck_id = d.id
		WHERE d.class_id = ? AND c.published = 1`
	args := []any{classID}

	if len(deckIDs) > 0 {
		in, inArgs, err := sqlx.In(` AND c.deck_id IN (?)`, deckIDs)
		if err != nil {
			return nil, fmt.Errorf("build deck filter: %w", err)
		}
		query += in
		args = append(args, inArgs...)
	}
	query += ` ORDER BY d.position, c.position, c.created_at`

	var cards []domain.Card
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("load class cards: %w", err)
	}
	return cards, nil
}

// GetDeck returns one deck, or a NotFoundError.
func (r *DeckRepo) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	var d domain.Deck
	err := r.db.GetContext(ctx, &d, `SELECT * FROM decks WHERE id = ?`, deckID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("deck", deckID)
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return &d, nil
}

// ListDecks returns all decks ordered by class and position.
func (r *DeckRepo) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	var decks []domain.Deck
	err := r.db.SelectContext(ctx, &decks,
		`SELECT * FROM decks ORDER BY class_id, position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return decks, nil
}

// ListClasses returns all classes ordered by creation time.
func (r *DeckRepo) ListClasses(ctx context.Context) ([]domain.Class, error) {
	var classes []domain.Class
	err := r.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ImportClass writes a class with its decks and cards in a single
// transaction. Re-importing updates existing rows in place; REPLACE
// would delete-then-insert, and the delete cascades into
// mastery_snapshots, wiping study progress on a routine content
// update.
func (r *DeckRepo) ImportClass(ctx context.Context, class domain.Class, decks []domain.Deck, cards []domain.Card) error {
	return runInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO classes (id, name, created_at) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			class.ID, class.Name, class.CreatedAt)
		if err != nil {
			return fmt.Errorf("upsert class: %w", err)
		}

		for _, d := range decks {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO decks (id, class_id, name, description, position, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
					class_id = excluded.class_id,
					name = excluded.name,
					description = excluded.description,
					position = excluded.position`,
				d.ID, d.ClassID, d.Name, d.Description, d.Position, d.CreatedAt)
			if err != nil {
				return fmt.Errorf("upsert deck %s: %w", d.ID, err)
			}
		}

		for _, c := range cards {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cards (id, deck_id, question, answer, position, published, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
					deck_id = excluded.deck_id,
					question = excluded.question,
					answer = excluded.answer,
					position = excluded.position,
					published = excluded.published`,
				c.ID, c.DeckID, c.Question, c.Answer, c.Position, c.Published, c.CreatedAt)
			if err != nil {
				return fmt.Errorf("upsert card %s: %w", c.ID, err)
			}
		}
		return nil
	})
}
