// Package classify scores document chunks for procurement relevance.
//
// Scoring is deterministic and keyword/pattern based: identical input
// text and rule set always produce identical output. The rule tables are
// configuration, not behavior — they are injected into the Scorer so
// callers (and tests) can substitute their own.
package classify

// Weights carries every tunable scoring constant. The default values are
// empirically tuned against a corpus of scanned RFPs; change them only
// through a rules override file so runs stay reproducible.
type Weights struct {
	MustKeep           float64 `json:"must_keep"`
	Signal             float64 `json:"signal"`
	Noise              float64 `json:"noise"`
	CategoryKeyword    float64 `json:"category_keyword"`
	CategoryKeywordCap float64 `json:"category_keyword_cap"`
	CategoryPattern    float64 `json:"category_pattern"`
	CategoryPatternCap float64 `json:"category_pattern_cap"`
	RiskPattern        float64 `json:"risk_pattern"`
	RiskCap            float64 `json:"risk_cap"`
	Booster            float64 `json:"booster"`
	Drawing            float64 `json:"drawing"`
	RelevantThreshold  float64 `json:"relevant_threshold"`
	MaybeThreshold     float64 `json:"maybe_threshold"`
}

// CategoryRule is one of the keyword categories a chunk can hit. Keywords
// are matched as substrings of the normalized text; Patterns are regular
// expressions compiled case-insensitively.
type CategoryRule struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Patterns []string `json:"patterns"`
}

// RiskRule is a named contractual-risk pattern bucket.
type RiskRule struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// BoosterRule is a structural regex whose match is strong positive
// evidence of relevance regardless of keyword density.
type BoosterRule struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// RuleSet is the full classifier configuration.
type RuleSet struct {
	MustKeepPhrases   []string       `json:"must_keep_phrases"`
	SignalKeywords    []string       `json:"signal_keywords"`
	NoiseKeywords     []string       `json:"noise_keywords"`
	MandatoryKeywords []string       `json:"mandatory_keywords"`
	Categories        []CategoryRule `json:"categories"`
	RiskBuckets       []RiskRule     `json:"risk_buckets"`
	Boosters          []BoosterRule  `json:"boosters"`
	DrawingKeywords   []string       `json:"drawing_keywords"`
	DrawingPatterns   []string       `json:"drawing_patterns"`
	DrawingMaxLen     int            `json:"drawing_max_len"`
	Weights           Weights        `json:"weights"`
}

// DefaultWeights returns the tuned scoring constants.
func DefaultWeights() Weights {
	return Weights{
		MustKeep:           6,
		Signal:             2,
		Noise:              -1.8,
		CategoryKeyword:    1.0,
		CategoryKeywordCap: 4,
		CategoryPattern:    1.25,
		CategoryPatternCap: 2.5,
		RiskPattern:        1.5,
		RiskCap:            3,
		Booster:            0.7,
		Drawing:            1.4,
		RelevantThreshold:  7,
		MaybeThreshold:     2.5,
	}
}

// DefaultRuleSet returns the built-in rule tables for LED display
// procurement documents.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		MustKeepPhrases: []string{
			"division 26",
			"division 27",
			"section 11 06",
			"bid form",
			"schedule of values",
			"scope of work",
			"basis of design",
			"proposal form",
			"substantial completion date",
		},
		SignalKeywords: []string{
			"pixel pitch",
			"warranty",
			"structural",
			"led display",
			"video board",
			"scoreboard",
			"ribbon board",
			"marquee",
			"brightness",
			"nits",
			"viewing angle",
			"refresh rate",
			"conduit",
			"shop drawings",
			"submittal",
			"controller",
			"processor",
			"fiber",
			"mounting",
			"rigging",
			"commissioning",
			"spare parts",
			"pixel",
			"signage",
			"installation",
		},
		NoiseKeywords: []string{
			"indemnification",
			"indemnify",
			"force majeure",
			"arbitration",
			"governing law",
			"severability",
			"hereinafter",
			"whereas",
			"notwithstanding",
			"successors and assigns",
			"counterparts",
			"notary",
		},
		MandatoryKeywords: []string{
			"must",
			"shall",
			"required",
			"mandatory",
			"deadline",
			"due date",
			"no later than",
		},
		Categories: []CategoryRule{
			{
				Name: "Display Hardware",
				Keywords: []string{
					"led display", "video board", "scoreboard", "ribbon board",
					"marquee", "video display", "led screen", "display system",
					"cabinet", "module",
				},
				Patterns: []string{
					`led\s+(?:video\s+)?display`,
					`ribbon\s+board`,
					`center[- ]hung`,
				},
			},
			{
				Name: "Display Specs",
				Keywords: []string{
					"pixel pitch", "nits", "brightness", "refresh rate",
					"viewing angle", "resolution", "contrast ratio", "smd",
				},
				Patterns: []string{
					`\d+(?:\.\d+)?\s*mm\b`,
					`\b\d{3,5}\s*nits?\b`,
					`\d+\s*hz\b`,
				},
			},
			{
				Name: "Electrical",
				Keywords: []string{
					"electrical", "conduit", "breaker", "circuit", "voltage",
					"transformer", "disconnect", "grounding", "power distribution",
				},
				Patterns: []string{
					`\b\d{3}\s*v(?:ac)?\b`,
					`\b\d+\s*amps?\b`,
					`dedicated\s+circuit`,
				},
			},
			{
				Name: "Structural",
				Keywords: []string{
					"structural", "steel", "framing", "wind load", "seismic",
					"anchor", "catwalk", "truss", "dead load",
				},
				Patterns: []string{
					`wind\s+load`,
					`\b\d+\s*psf\b`,
					`structural\s+engineer`,
				},
			},
			{
				Name: "Installation",
				Keywords: []string{
					"installation", "mounting", "hoisting", "crane", "lift",
					"scaffolding", "rigging", "demolition", "removal",
				},
				Patterns: []string{
					`install(?:ation)?\s+of`,
					`boom\s+lift`,
					`existing\s+(?:display|sign|board)`,
				},
			},
			{
				Name: "Control/Data",
				Keywords: []string{
					"controller", "processor", "fiber", "signal", "cat6",
					"network", "control room", "sending card", "redundancy",
				},
				Patterns: []string{
					`single[- ]mode\s+fiber`,
					`cat\s*6a?\b`,
					`control\s+system`,
				},
			},
			{
				Name: "Permits",
				Keywords: []string{
					"permit", "inspection", "code compliance", "ul listed",
					"licensing", "certificate of occupancy",
				},
				Patterns: []string{
					`ul\s*48\b`,
					`building\s+permit`,
					`electrical\s+permit`,
				},
			},
			{
				Name: "Commercial",
				Keywords: []string{
					"bid", "warranty", "payment", "pricing", "alternate",
					"unit price", "allowance", "bond", "retainage",
					"liquidated damages", "schedule of values",
				},
				Patterns: []string{
					`bid\s+form`,
					`performance\s+bond`,
					`payment\s+terms`,
				},
			},
		},
		RiskBuckets: []RiskRule{
			{Name: "Liquidated Damages", Patterns: []string{
				`liquidated\s+damages`,
				`\$[\d,]+\s*(?:per|/)\s*(?:calendar\s+)?day`,
			}},
			{Name: "Performance Bond", Patterns: []string{
				`performance\s+bond`,
				`payment\s+bond`,
				`bid\s+bond`,
			}},
			{Name: "Payment Terms", Patterns: []string{
				`net\s*\d{2}\b`,
				`pay[- ]when[- ]paid`,
				`payment\s+terms`,
			}},
			{Name: "Retainage", Patterns: []string{
				`retainage`,
				`retention\s+of\s+\d+\s*%`,
			}},
			{Name: "Change Order", Patterns: []string{
				`change\s+order`,
				`no\s+damages?\s+for\s+delay`,
			}},
			{Name: "Force Majeure", Patterns: []string{
				`force\s+majeure`,
			}},
			{Name: "Indemnification", Patterns: []string{
				`indemnif(?:y|ication)`,
				`hold\s+harmless`,
			}},
			{Name: "Insurance", Patterns: []string{
				`certificate\s+of\s+insurance`,
				`general\s+liability`,
				`umbrella\s+coverage`,
			}},
			{Name: "Termination", Patterns: []string{
				`termination\s+for\s+(?:cause|convenience)`,
				`terminate\s+this\s+agreement`,
			}},
			{Name: "Dispute Resolution", Patterns: []string{
				`arbitration`,
				`dispute\s+resolution`,
				`governing\s+law`,
			}},
		},
		Boosters: []BoosterRule{
			{Name: "Dollar Amount", Pattern: `\$[\d,]+(?:\.\d{2})?`},
			{Name: "Dimensions", Pattern: `\d+(?:\.\d+)?\s*'?\s*h\s*[x×]\s*\d+(?:\.\d+)?\s*'?\s*w|\b\d+(?:\.\d+)?\s*(?:'|ft|feet)\s*[x×]\s*\d+(?:\.\d+)?\s*(?:'|ft|feet)\b`},
			{Name: "Millimeter Spec", Pattern: `\b\d+(?:\.\d+)?\s*mm\b`},
			{Name: "Brightness", Pattern: `\b\d{3,5}\s*nits?\b`},
			{Name: "LED Display", Pattern: `led.{0,40}display`},
			{Name: "Phase/Year", Pattern: `phase\s+\d+|\b20\d{2}\b`},
		},
		DrawingKeywords: []string{
			"scale", "detail", "elevation", "section", "plan", "sheet",
		},
		DrawingPatterns: []string{
			`sheet\s+\d+\s+of\s+\d+`,
			`\bav[- ]?\d{3}\b`,
		},
		DrawingMaxLen: 350,
		Weights:       DefaultWeights(),
	}
}
