package classify

// BuildRulesJSONSchema returns the JSON-Schema (draft 2020-12 subset) a
// rules override file must satisfy. Every field is optional; omitted
// fields keep their DefaultRuleSet values.
func BuildRulesJSONSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}
	weightProps := map[string]any{}
	for _, k := range []string{
		"must_keep", "signal", "noise",
		"category_keyword", "category_keyword_cap",
		"category_pattern", "category_pattern_cap",
		"risk_pattern", "risk_cap",
		"booster", "drawing",
		"relevant_threshold", "maybe_threshold",
	} {
		weightProps[k] = map[string]any{"type": "number"}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"must_keep_phrases":  stringList,
			"signal_keywords":    stringList,
			"noise_keywords":     stringList,
			"mandatory_keywords": stringList,
			"categories": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name"},
					"properties": map[string]any{
						"name":     map[string]any{"type": "string", "minLength": 1},
						"keywords": stringList,
						"patterns": stringList,
					},
				},
			},
			"risk_buckets": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name", "patterns"},
					"properties": map[string]any{
						"name":     map[string]any{"type": "string", "minLength": 1},
						"patterns": stringList,
					},
				},
			},
			"boosters": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"name", "pattern"},
					"properties": map[string]any{
						"name":    map[string]any{"type": "string", "minLength": 1},
						"pattern": map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
			"drawing_keywords": stringList,
			"drawing_patterns": stringList,
			"drawing_max_len":  map[string]any{"type": "integer", "minimum": 0},
			"weights": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           weightProps,
			},
		},
	}
}
