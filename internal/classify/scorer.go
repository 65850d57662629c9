package classify

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reCurlyQuotes = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`)

	reasonLimit = 3
)

// Scorer is a compiled, immutable relevance classifier. Safe for
// concurrent use: chunk scoring depends only on the chunk's own text.
type Scorer struct {
	rules      RuleSet
	logger     *slog.Logger
	categories []compiledCategory
	risks      []compiledRisk
	boosters   []compiledBooster
	mandatory  []*regexp.Regexp
	drawingKW  []*regexp.Regexp
	drawingPat []*regexp.Regexp
}

type compiledCategory struct {
	name     string
	keywords []string
	patterns []*regexp.Regexp
}

type compiledRisk struct {
	name     string
	patterns []*regexp.Regexp
}

type compiledBooster struct {
	name    string
	pattern *regexp.Regexp
}

// NewScorer compiles a rule set. Pattern compilation is the only failure
// mode; the default rule set always compiles.
func NewScorer(rules RuleSet, logger *slog.Logger) (*Scorer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scorer{rules: rules, logger: logger}

	for _, c := range rules.Categories {
		cc := compiledCategory{name: c.Name, keywords: c.Keywords}
		for _, p := range c.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("category %q pattern %q: %w", c.Name, p, err)
			}
			cc.patterns = append(cc.patterns, re)
		}
		s.categories = append(s.categories, cc)
	}
	for _, r := range rules.RiskBuckets {
		cr := compiledRisk{name: r.Name}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("risk bucket %q pattern %q: %w", r.Name, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		s.risks = append(s.risks, cr)
	}
	for _, b := range rules.Boosters {
		re, err := regexp.Compile(`(?i)` + b.Pattern)
		if err != nil {
			return nil, fmt.Errorf("booster %q: %w", b.Name, err)
		}
		s.boosters = append(s.boosters, compiledBooster{name: b.Name, pattern: re})
	}
	for _, kw := range rules.MandatoryKeywords {
		s.mandatory = append(s.mandatory, wordPattern(kw))
	}
	for _, kw := range rules.DrawingKeywords {
		s.drawingKW = append(s.drawingKW, wordPattern(kw))
	}
	for _, p := range rules.DrawingPatterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("drawing pattern %q: %w", p, err)
		}
		s.drawingPat = append(s.drawingPat, re)
	}
	return s, nil
}

func wordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
}

// Rules returns the rule set the scorer was compiled from.
func (s *Scorer) Rules() RuleSet {
	return s.rules
}

// normalize produces the lowercase, whitespace-collapsed copy all keyword
// matching runs against.
func normalize(text string) string {
	t := reCurlyQuotes.Replace(text)
	t = strings.ToLower(t)
	t = reWhitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Score classifies one chunk of text. Deterministic: byte-identical text
// always yields the identical score.
func (s *Scorer) Score(text string) entity.Score {
	norm := normalize(text)
	w := s.rules.Weights

	var reasonsMustKeep, reasonsMandatory, reasonsOther []string

	// 1) must-keep phrases, weight each occurrence.
	mustCount := 0
	for _, phrase := range s.rules.MustKeepPhrases {
		n := strings.Count(norm, phrase)
		if n > 0 {
			mustCount += n
			reasonsMustKeep = append(reasonsMustKeep, fmt.Sprintf("section marker %q", phrase))
		}
	}

	// 2) signal keywords.
	signalCount := 0
	var matchedKeywords []string
	for _, kw := range s.rules.SignalKeywords {
		n := strings.Count(norm, kw)
		if n > 0 {
			signalCount += n
			matchedKeywords = append(matchedKeywords, kw)
		}
	}

	// 3) noise keywords suppress relevance.
	noiseCount := 0
	for _, kw := range s.rules.NoiseKeywords {
		noiseCount += strings.Count(norm, kw)
	}

	raw := float64(mustCount)*w.MustKeep + float64(signalCount)*w.Signal + float64(noiseCount)*w.Noise

	// 4) density normalization. Only positive totals are divided by the
	// length root; noise suppression is never diluted by chunk length.
	density := raw
	if raw > 0 && len(norm) > 0 {
		density = raw / math.Sqrt(float64(len(norm)))
	}

	// mandatory/deadline language, second reason tier.
	for _, re := range s.mandatory {
		if loc := re.FindString(norm); loc != "" {
			reasonsMandatory = append(reasonsMandatory, fmt.Sprintf("mandatory language %q", loc))
		}
	}

	// 5) category hits, capped per category, independent of density.
	categoryScore := 0.0
	var categoryHits []string
	for _, c := range s.categories {
		kwMatched := 0
		for _, kw := range c.keywords {
			if strings.Contains(norm, kw) {
				kwMatched++
			}
		}
		patMatched := 0
		for _, re := range c.patterns {
			if re.MatchString(norm) {
				patMatched++
			}
		}
		if kwMatched == 0 && patMatched == 0 {
			continue
		}
		categoryScore += math.Min(w.CategoryKeywordCap, float64(kwMatched)*w.CategoryKeyword)
		categoryScore += math.Min(w.CategoryPatternCap, float64(patMatched)*w.CategoryPattern)
		categoryHits = append(categoryHits, c.name)
		reasonsOther = append(reasonsOther, "category "+c.name)
	}

	// 6) risk buckets, capped per bucket.
	riskScore := 0.0
	var riskHits []string
	for _, r := range s.risks {
		patMatched := 0
		for _, re := range r.patterns {
			if re.MatchString(norm) {
				patMatched++
			}
		}
		if patMatched == 0 {
			continue
		}
		riskScore += math.Min(w.RiskCap, float64(patMatched)*w.RiskPattern)
		riskHits = append(riskHits, r.name)
		reasonsOther = append(reasonsOther, "risk "+r.name)
	}

	// 7) boosters: flat bonus per distinct matching pattern, occurrence
	// count does not matter.
	boosterScore := 0.0
	var boosterHits []string
	for _, b := range s.boosters {
		if b.pattern.MatchString(norm) {
			boosterScore += w.Booster
			boosterHits = append(boosterHits, b.name)
			reasonsOther = append(reasonsOther, "booster "+b.name)
		}
	}

	// 8) drawing-sheet heuristic: short text with drawing vocabulary.
	drawingBonus := 0.0
	drawingCandidate := false
	if len(text) < s.rules.DrawingMaxLen {
		hit := false
		for _, re := range s.drawingKW {
			if re.MatchString(norm) {
				hit = true
				break
			}
		}
		if !hit {
			for _, re := range s.drawingPat {
				if re.MatchString(norm) {
					hit = true
					break
				}
			}
		}
		if hit {
			drawingBonus = w.Drawing
			drawingCandidate = true
			reasonsOther = append(reasonsOther, "drawing sheet vocabulary")
		}
	}

	score := round2(density + categoryScore + riskScore + boosterScore + drawingBonus)

	// Label thresholds; any must-keep match is a hard override.
	label := constants.LabelIrrelevant
	switch {
	case mustCount > 0 || score >= w.RelevantThreshold:
		label = constants.LabelRelevant
	case score >= w.MaybeThreshold:
		label = constants.LabelMaybe
	}

	return entity.Score{
		Label:            label,
		Value:            score,
		Reason:           buildReason(reasonsMustKeep, reasonsMandatory, reasonsOther),
		CategoryHits:     categoryHits,
		RiskHits:         riskHits,
		MatchedKeywords:  matchedKeywords,
		BoosterHits:      boosterHits,
		DrawingCandidate: drawingCandidate,
	}
}

// buildReason joins at most reasonLimit triggers, must-keep first, then
// mandatory/deadline language, then everything else.
func buildReason(mustKeep, mandatory, other []string) string {
	all := make([]string, 0, len(mustKeep)+len(mandatory)+len(other))
	all = append(all, mustKeep...)
	all = append(all, mandatory...)
	all = append(all, other...)
	if len(all) == 0 {
		return "no triggers"
	}
	if len(all) > reasonLimit {
		all = all[:reasonLimit]
	}
	return strings.Join(all, "; ")
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
