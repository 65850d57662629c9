package entity

import (
	"github.com/bidworks/rfp-analyzer/constants"
)

// Chunk is an independently scored section of document text. Identity is
// its sequence index within one analysis run (chunk-0, chunk-1, ...);
// IDs are not stable across re-runs on edited text.
type Chunk struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Text             string          `json:"text"`
	Label            constants.Label `json:"label"`
	Score            float64         `json:"score"`
	Reason           string          `json:"reason"`
	CategoryHits     []string        `json:"category_hits"`
	RiskHits         []string        `json:"risk_hits"`
	MatchedKeywords  []string        `json:"matched_keywords"`
	BoosterHits      []string        `json:"booster_hits"`
	DrawingCandidate bool            `json:"drawing_candidate"`
}

// Score is the relevance classifier's verdict for one chunk of text.
type Score struct {
	Label            constants.Label `json:"label"`
	Value            float64         `json:"score"`
	Reason           string          `json:"reason"`
	CategoryHits     []string        `json:"category_hits"`
	RiskHits         []string        `json:"risk_hits"`
	MatchedKeywords  []string        `json:"matched_keywords"`
	BoosterHits      []string        `json:"booster_hits"`
	DrawingCandidate bool            `json:"drawing_candidate"`
}
