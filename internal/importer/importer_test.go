package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabh/certdeck/internal/domain"
)

type capturedImport struct {
	class domain.Class
	decks []domain.Deck
	cards []domain.Card
	calls int
}

func (c *capturedImport) ImportClass(_ context.Context, class domain.Class, decks []domain.Deck, cards []domain.Card) error {
	c.class = class
	c.decks = decks
	c.cards = cards
	c.calls++
	return nil
}

const validClassJSON = `{
	"class": {"id": "aws-saa", "name": "AWS Solutions Architect"},
	"decks": [
		{
			"id": "s3",
			"name": "S3 Storage",
			"description": "Object storage concepts",
			"cards": [
				{"id": "q1", "question": "Max object size?", "answer": "5 TB"},
				{"question": "Default durability?", "answer": "11 nines", "published": false}
			]
		},
		{
			"name": "VPC Networking",
			"cards": [
				{"question": "CIDR max size?", "answer": "/16"}
			]
		}
	]
}`

func TestImportValidFile(t *testing.T) {
	writer := &capturedImport{}
	imp := New(writer)
	imp.now = func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	}

	result, err := imp.Import(context.Background(), []byte(validClassJSON))
	require.NoError(t, err)
	require.Equal(t, 1, writer.calls)

	assert.Equal(t, "aws-saa", result.ClassID)
	assert.Equal(t, 2, result.Decks)
	assert.Equal(t, 3, result.Cards)

	assert.Equal(t, "AWS Solutions Architect", writer.class.Name)
	require.Len(t, writer.decks, 2)
	assert.Equal(t, "s3", writer.decks[0].ID)
	assert.Equal(t, 0, writer.decks[0].Position)
	assert.Equal(t, 1, writer.decks[1].Position)
	// Decks without an explicit id get a generated one.
	assert.NotEmpty(t, writer.decks[1].ID)

	require.Len(t, writer.cards, 3)
	assert.Equal(t, "q1", writer.cards[0].ID)
	assert.True(t, writer.cards[0].Published, "published defaults to true")
	assert.False(t, writer.cards[1].Published)
	assert.NotEmpty(t, writer.cards[1].ID)
	assert.Equal(t, writer.decks[1].ID, writer.cards[2].DeckID)
}

func TestImportRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"class": `},
		{"missing class name", `{"class": {"id": "x"}, "decks": []}`},
		{"missing question", `{
			"class": {"id": "x", "name": "X"},
			"decks": [{"name": "D", "cards": [{"answer": "only"}]}]
		}`},
		{"question as wrong type", `{
			"class": {"id": "x", "name": "X"},
			"decks": [{"name": "D", "cards": [{"question": 42, "answer": "a"}]}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &capturedImport{}
			_, err := New(writer).Import(context.Background(), []byte(tt.raw))
			assert.True(t, domain.IsValidation(err), "got %v, want ValidationError", err)
			assert.Equal(t, 0, writer.calls, "nothing may be written on validation failure")
		})
	}
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class.json")
	require.NoError(t, os.WriteFile(path, []byte(validClassJSON), 0o644))

	writer := &capturedImport{}
	result, err := New(writer).ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "aws-saa", result.ClassID)

	_, err = New(writer).ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSchemaCompiles(t *testing.T) {
	assert.NotPanics(t, func() { mustCompileSchema() })
}
