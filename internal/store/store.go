// Package store persists cards, decks, mastery snapshots, and quiz
// aggregates in SQLite.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", pragmaDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Decks returns a DeckRepo backed by this store.
func (s *Store) Decks() *DeckRepo {
	return &DeckRepo{db: s.db}
}

// Snapshots returns a SnapshotRepo backed by this store.
func (s *Store) Snapshots() *SnapshotRepo {
	return &SnapshotRepo{db: s.db}
}

// Aggregates returns an AggregateRepo backed by this store.
func (s *Store) Aggregates() *AggregateRepo {
	return &AggregateRepo{db: s.db}
}

// Events returns an EventRepo backed by this store.
func (s *Store) Events() *EventRepo {
	return &EventRepo{db: s.db}
}

// pragmaDSN appends the pragmas as _pragma query parameters so the
// driver applies them on every pooled connection, not just whichever
// one runs a PRAGMA statement first.
func pragmaDSN(dsn string) string {
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(5000)",
		"_pragma=foreign_keys(1)",
		"_pragma=synchronous(NORMAL)",
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CERTDECK_DB environment variable
// 2. $XDG_DATA_HOME/certdeck/certdeck.db
// 3. ~/.local/share/certdeck/certdeck.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CERTDECK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "certdeck", "certdeck.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
