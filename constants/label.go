package constants

import (
	"strings"
)

// Label is the relevance classifier's verdict for a chunk.
type Label string

const (
	LabelRelevant   Label = "relevant"
	LabelMaybe      Label = "maybe"
	LabelIrrelevant Label = "irrelevant"
)

var allLabels = []Label{
	LabelRelevant,
	LabelMaybe,
	LabelIrrelevant,
}

func LabelsAsStringSlice() []string {
	result := make([]string, len(allLabels))
	for i, l := range allLabels {
		result[i] = string(l)
	}
	return result
}

// CanonicalizeLabel maps free-form input (e.g. a spreadsheet cell) onto a
// known label. Unknown input falls back to irrelevant.
func CanonicalizeLabel(input string) (Label, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]Label{
		"keep":     LabelRelevant,
		"yes":      LabelRelevant,
		"review":   LabelMaybe,
		"unsure":   LabelMaybe,
		"drop":     LabelIrrelevant,
		"no":       LabelIrrelevant,
		"skip":     LabelIrrelevant,
		"excluded": LabelIrrelevant,
	}
	if l, ok := synonyms[normalized]; ok {
		return l, true
	}
	for _, l := range allLabels {
		if normalized == string(l) {
			return l, true
		}
	}
	return LabelIrrelevant, false
}
