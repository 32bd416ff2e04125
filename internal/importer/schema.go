package importer

// classFileSchema validates a class JSON file before any row is
// written. IDs are optional everywhere; missing ones are generated.
var classFileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"class": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"name": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"name"},
			"additionalProperties": false,
		},
		"decks": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"cards": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":        map[string]any{"type": "string"},
								"question":  map[string]any{"type": "string", "minLength": 1},
								"answer":    map[string]any{"type": "string", "minLength": 1},
								"published": map[string]any{"type": "boolean"},
							},
							"required":             []any{"question", "answer"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"name", "cards"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"class", "decks"},
	"additionalProperties": false,
}
