package ingest

// DatasetSchema is the JSON schema upstream payloads must satisfy before any
// row reaches storage.
func DatasetSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"containers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":             map[string]any{"type": "string", "minLength": 1},
						"neighborhood":   map[string]any{"type": "string", "minLength": 1},
						"lat":            map[string]any{"type": "number", "minimum": -90, "maximum": 90},
						"lon":            map[string]any{"type": "number", "minimum": -180, "maximum": 180},
						"type":           map[string]any{"type": "string"},
						"waste_category": map[string]any{"type": "string"},
						"fill_level":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
						"status":         map[string]any{"type": "string"},
						"last_emptied":   map[string]any{"type": "string"},
						"capacity_kg":    map[string]any{"type": "integer", "minimum": 0},
					},
					"required":             []any{"id", "neighborhood", "lat", "lon", "type", "waste_category", "fill_level"},
					"additionalProperties": true,
				},
			},
		},
		"required":             []any{"containers"},
		"additionalProperties": true,
	}
}
