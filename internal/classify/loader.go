package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// rulesFile mirrors RuleSet with optional fields so an override file can
// replace any table or weight without restating the rest.
type rulesFile struct {
	MustKeepPhrases   []string       `json:"must_keep_phrases"`
	SignalKeywords    []string       `json:"signal_keywords"`
	NoiseKeywords     []string       `json:"noise_keywords"`
	MandatoryKeywords []string       `json:"mandatory_keywords"`
	Categories        []CategoryRule `json:"categories"`
	RiskBuckets       []RiskRule     `json:"risk_buckets"`
	Boosters          []BoosterRule  `json:"boosters"`
	DrawingKeywords   []string       `json:"drawing_keywords"`
	DrawingPatterns   []string       `json:"drawing_patterns"`
	DrawingMaxLen     *int           `json:"drawing_max_len"`
	Weights           *weightsFile   `json:"weights"`
}

type weightsFile struct {
	MustKeep           *float64 `json:"must_keep"`
	Signal             *float64 `json:"signal"`
	Noise              *float64 `json:"noise"`
	CategoryKeyword    *float64 `json:"category_keyword"`
	CategoryKeywordCap *float64 `json:"category_keyword_cap"`
	CategoryPattern    *float64 `json:"category_pattern"`
	CategoryPatternCap *float64 `json:"category_pattern_cap"`
	RiskPattern        *float64 `json:"risk_pattern"`
	RiskCap            *float64 `json:"risk_cap"`
	Booster            *float64 `json:"booster"`
	Drawing            *float64 `json:"drawing"`
	RelevantThreshold  *float64 `json:"relevant_threshold"`
	MaybeThreshold     *float64 `json:"maybe_threshold"`
}

// LoadRules reads a rules override file, validates it against the rules
// schema, and merges it over the default rule set.
func LoadRules(path string, logger *slog.Logger) (RuleSet, error) {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return RuleSet{}, err
	}
	logger.Info("rules.loaded", "path", path,
		"categories", len(rules.Categories),
		"risk_buckets", len(rules.RiskBuckets),
		"boosters", len(rules.Boosters),
	)
	return rules, nil
}

// ParseRules validates rules JSON against the schema and merges it over
// DefaultRuleSet.
func ParseRules(data []byte) (RuleSet, error) {
	if err := validateAgainstSchema(BuildRulesJSONSchema(), data); err != nil {
		return RuleSet{}, fmt.Errorf("rules file invalid: %w", err)
	}

	var f rulesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return RuleSet{}, fmt.Errorf("decode rules file: %w", err)
	}

	rules := DefaultRuleSet()
	if f.MustKeepPhrases != nil {
		rules.MustKeepPhrases = f.MustKeepPhrases
	}
	if f.SignalKeywords != nil {
		rules.SignalKeywords = f.SignalKeywords
	}
	if f.NoiseKeywords != nil {
		rules.NoiseKeywords = f.NoiseKeywords
	}
	if f.MandatoryKeywords != nil {
		rules.MandatoryKeywords = f.MandatoryKeywords
	}
	if f.Categories != nil {
		rules.Categories = f.Categories
	}
	if f.RiskBuckets != nil {
		rules.RiskBuckets = f.RiskBuckets
	}
	if f.Boosters != nil {
		rules.Boosters = f.Boosters
	}
	if f.DrawingKeywords != nil {
		rules.DrawingKeywords = f.DrawingKeywords
	}
	if f.DrawingPatterns != nil {
		rules.DrawingPatterns = f.DrawingPatterns
	}
	if f.DrawingMaxLen != nil {
		rules.DrawingMaxLen = *f.DrawingMaxLen
	}
	if f.Weights != nil {
		applyWeights(&rules.Weights, f.Weights)
	}
	return rules, nil
}

func applyWeights(w *Weights, f *weightsFile) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&w.MustKeep, f.MustKeep)
	set(&w.Signal, f.Signal)
	set(&w.Noise, f.Noise)
	set(&w.CategoryKeyword, f.CategoryKeyword)
	set(&w.CategoryKeywordCap, f.CategoryKeywordCap)
	set(&w.CategoryPattern, f.CategoryPattern)
	set(&w.CategoryPatternCap, f.CategoryPatternCap)
	set(&w.RiskPattern, f.RiskPattern)
	set(&w.RiskCap, f.RiskCap)
	set(&w.Booster, f.Booster)
	set(&w.Drawing, f.Drawing)
	set(&w.RelevantThreshold, f.RelevantThreshold)
	set(&w.MaybeThreshold, f.MaybeThreshold)
}

// validateAgainstSchema validates raw JSON against a schema expressed as
// a generic map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rules.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rules.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
