package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/bidworks/rfp-analyzer/constants"
)

// Analysis is the result of one full pipeline run over a document.
// Chunks and Meta are produced fresh on every run and replaced wholesale
// on re-analysis.
type Analysis struct {
	RunID       uuid.UUID           `json:"run_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Meta        RfpMeta             `json:"meta"`
	Chunks      []Chunk             `json:"chunks"`
	Workbook    *StructuredWorkbook `json:"workbook"`
}

// LabelCounts tallies chunk labels for run summaries.
func (a *Analysis) LabelCounts() map[constants.Label]int {
	counts := make(map[constants.Label]int, 3)
	for _, c := range a.Chunks {
		counts[c.Label]++
	}
	return counts
}
