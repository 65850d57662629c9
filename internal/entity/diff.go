package entity

// DiffSet lists record IDs that were added, removed, or semantically
// edited within one collection between two workbook versions.
type DiffSet struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Edited  []string `json:"edited"`
}

func (d DiffSet) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Edited) == 0
}

// WorkbookDiffSummary is a keyed three-way set difference between two
// workbook versions, computed per collection. Records are keyed by ID:
// an edit that also changed the ID shows up as removed+added.
type WorkbookDiffSummary struct {
	Requirements DiffSet `json:"requirements"`
	Pricing      DiffSet `json:"pricing"`
	Schedule     DiffSet `json:"schedule"`
	Risks        DiffSet `json:"risks"`
	Assumptions  DiffSet `json:"assumptions"`
}

func (d *WorkbookDiffSummary) Empty() bool {
	return d.Requirements.Empty() && d.Pricing.Empty() && d.Schedule.Empty() &&
		d.Risks.Empty() && d.Assumptions.Empty()
}
