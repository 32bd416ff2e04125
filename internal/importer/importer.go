// Package importer loads class files (JSON) into the card store.
// Files are validated against a JSON schema before any row is written,
// so a malformed file never partially imports.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rishabh/certdeck/internal/domain"
)

// ClassWriter persists an imported class atomically. Implemented by
// store.DeckRepo.
type ClassWriter interface {
	ImportClass(ctx context.Context, class domain.Class, decks []domain.Deck, cards []domain.Card) error
}

// classFile mirrors the JSON layout of an importable class file.
type classFile struct {
	Class struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"class"`
	Decks []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Cards       []struct {
			ID        string `json:"id"`
			Question  string `json:"question"`
			Answer    string `json:"answer"`
			Published *bool  `json:"published"`
		} `json:"cards"`
	} `json:"decks"`
}

// Result summarizes a completed import.
type Result struct {
	ClassID string
	Decks   int
	Cards   int
}

// Importer validates and writes class files.
type Importer struct {
	writer ClassWriter
	schema *jsonschema.Schema
	now    func() time.Time
}

// New creates an Importer. Panics only if the built-in schema fails to
// compile, which a unit test catches.
func New(writer ClassWriter) *Importer {
	return &Importer{
		writer: writer,
		schema: mustCompileSchema(),
		now:    time.Now,
	}
}

// ImportFile validates and imports one class file.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read class file: %w", err)
	}
	return i.Import(ctx, raw)
}

// Import validates and imports raw class-file JSON.
func (i *Importer) Import(ctx context.Context, raw []byte) (*Result, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, domain.NewValidationError("class file", "invalid JSON: %v", err)
	}
	if err := i.schema.Validate(parsed); err != nil {
		return nil, domain.NewValidationError("class file", "schema validation failed: %v", err)
	}

	var file classFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, domain.NewValidationError("class file", "decode failed: %v", err)
	}

	now := i.now()
	class := domain.Class{
		ID:        orNewID(file.Class.ID),
		Name:      file.Class.Name,
		CreatedAt: now,
	}

	var decks []domain.Deck
	var cards []domain.Card
	for di, d := range file.Decks {
		deck := domain.Deck{
			ID:          orNewID(d.ID),
			ClassID:     class.ID,
			Name:        d.Name,
			Description: d.Description,
			Position:    di,
			CreatedAt:   now,
		}
		decks = append(decks, deck)

		for ci, c := range d.Cards {
			published := true
			if c.Published != nil {
				published = *c.Published
			}
			cards = append(cards, domain.Card{
				ID:        orNewID(c.ID),
				DeckID:    deck.ID,
				Question:  c.Question,
				Answer:    c.Answer,
				Position:  ci,
				Published: published,
				CreatedAt: now,
			})
		}
	}

	if err := i.writer.ImportClass(ctx, class, decks, cards); err != nil {
		return nil, fmt.Errorf("write class: %w", err)
	}

	return &Result{ClassID: class.ID, Decks: len(decks), Cards: len(cards)}, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func mustCompileSchema() *jsonschema.Schema {
	defBytes, err := json.Marshal(classFileSchema)
	if err != nil {
		panic(fmt.Sprintf("marshal class file schema: %v", err))
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		panic(fmt.Sprintf("parse class file schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://class-file.json"
	if err := c.AddResource(schemaURL, def); err != nil {
		panic(fmt.Sprintf("add schema resource: %v", err))
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile class file schema: %v", err))
	}
	return compiled
}
