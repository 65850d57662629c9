package entity

import (
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
)

// ProjectInfo is the workbook header block.
type ProjectInfo struct {
	Title       string    `json:"title"`
	Client      string    `json:"client"`
	Venue       string    `json:"venue"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Requirement is a single extracted requirement line.
type Requirement struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// PricingLine is one dollar amount found in a chunk line. A line with
// three amounts yields three records sharing the same item text.
type PricingLine struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// ScheduleItem is a milestone line with its due text ("TBD" when no date
// could be parsed).
type ScheduleItem struct {
	ID        string `json:"id"`
	Milestone string `json:"milestone"`
	Due       string `json:"due"`
	Source    string `json:"source"`
	Citation  string `json:"citation"`
}

// Risk is a contractual/commercial risk line.
type Risk struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Severity string `json:"severity"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// Assumption is an exclusion/by-others/owner-provided line.
type Assumption struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Source   string `json:"source"`
	Citation string `json:"citation"`
}

// SourceRef is the audit-trail entry linking extracted records back to
// the chunk they came from.
type SourceRef struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Score float64         `json:"score"`
	Label constants.Label `json:"label"`
}

// StructuredWorkbook is the canonical structured representation of an
// analyzed document: five typed record collections plus provenance.
// Every record's Citation resolves to an entry in Sources, or is empty
// when provenance was lost during a round-trip through an older export.
type StructuredWorkbook struct {
	Project      ProjectInfo    `json:"project"`
	Requirements []Requirement  `json:"requirements"`
	Pricing      []PricingLine  `json:"pricing"`
	Schedule     []ScheduleItem `json:"schedule"`
	Risks        []Risk         `json:"risks"`
	Assumptions  []Assumption   `json:"assumptions"`
	Sources      []SourceRef    `json:"sources"`
}

// RecordCount returns the total number of structured records across the
// five collections (sources excluded).
func (w *StructuredWorkbook) RecordCount() int {
	return len(w.Requirements) + len(w.Pricing) + len(w.Schedule) + len(w.Risks) + len(w.Assumptions)
}

// HasRecords reports whether any of the five collections is non-empty.
func (w *StructuredWorkbook) HasRecords() bool {
	return w.RecordCount() > 0
}

// SourceByID resolves a citation against the provenance list.
func (w *StructuredWorkbook) SourceByID(id string) (SourceRef, bool) {
	for _, s := range w.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return SourceRef{}, false
}
