package llm

// Schema maps (JSON-Schema draft 2020-12 subset) for each result shape. They
// are compiled and applied locally to the recovered fragment; the model is
// untrusted, so nothing downstream sees a value these didn't accept.

// BuildSummarySchema accepts an object carrying a non-empty Summary string.
func BuildSummarySchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"Summary"},
		"properties": map[string]any{
			"Summary": map[string]any{"type": "string", "minLength": 1},
		},
	}
}

// BuildKeywordsSchema accepts an array of {word, score} objects. Scores are
// range-checked after decode (clamped, not rejected), so the schema only
// pins the types.
func BuildKeywordsSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"word", "score"},
			"properties": map[string]any{
				"word":  map[string]any{"type": "string", "minLength": 1},
				"score": map[string]any{"type": "number"},
			},
		},
	}
}

// BuildStructureSchema accepts the document-structure object. Every key is
// optional — absent sequences default to empty on decode — but a present key
// must carry the right element type.
func BuildStructureSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sections":            stringList,
			"learning_objectives": stringList,
			"competencies":        stringList,
			"resources":           stringList,
		},
	}
}

// BuildScheduleSchema accepts either schedule form: the week-based
// {milestones, weekly_plan} object, or a flat map of ISO-date keys to
// {type, description} entries.
func BuildScheduleSchema() map[string]any {
	weekBased := map[string]any{
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []any{"milestones"}},
			map[string]any{"required": []any{"weekly_plan"}},
		},
		"properties": map[string]any{
			"milestones": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"type", "description"},
					"properties": map[string]any{
						"type":        map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"week":        map[string]any{"type": "integer"},
					},
				},
			},
			"weekly_plan": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"week"},
					"properties": map[string]any{
						"week":  map[string]any{"type": "integer"},
						"topic": map[string]any{"type": "string"},
						"activities": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
	dateKeyed := map[string]any{
		"type": "object",
		"patternProperties": map[string]any{
			`^\d{4}-\d{2}-\d{2}$`: map[string]any{
				"type":     "object",
				"required": []any{"type", "description"},
				"properties": map[string]any{
					"type":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
			},
		},
		"additionalProperties": false,
		"minProperties":        1,
	}
	return map[string]any{
		"anyOf": []any{weekBased, dateKeyed},
	}
}

func schemaFor(shape Shape) map[string]any {
	switch shape {
	case ShapeSummary:
		return BuildSummarySchema()
	case ShapeKeywords:
		return BuildKeywordsSchema()
	case ShapeStructure:
		return BuildStructureSchema()
	case ShapeSchedule:
		return BuildScheduleSchema()
	default:
		return nil
	}
}
