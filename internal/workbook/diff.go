package workbook

import (
	"sort"

	"github.com/bidworks/rfp-analyzer/internal/entity"
)

// Diff compares two workbook versions per collection, keyed by record ID.
// Returns nil when there is no previous workbook (first import). Edited
// means a record present in both whose semantic fields differ; id, source
// and citation are excluded from the comparison. Because keying is by ID,
// an edit that also changed the ID reports as removed+added.
func Diff(prev, next *entity.StructuredWorkbook) *entity.WorkbookDiffSummary {
	if prev == nil {
		return nil
	}
	if next == nil {
		next = &entity.StructuredWorkbook{}
	}
	return &entity.WorkbookDiffSummary{
		Requirements: diffRequirements(prev.Requirements, next.Requirements),
		Pricing:      diffPricing(prev.Pricing, next.Pricing),
		Schedule:     diffSchedule(prev.Schedule, next.Schedule),
		Risks:        diffRisks(prev.Risks, next.Risks),
		Assumptions:  diffAssumptions(prev.Assumptions, next.Assumptions),
	}
}

// diffKeyed performs the keyed three-way set difference given the two id
// sets and an equality check over semantic fields.
func diffKeyed(prevIDs, nextIDs []string, inPrev, inNext func(id string) bool, same func(id string) bool) entity.DiffSet {
	var d entity.DiffSet
	for _, id := range nextIDs {
		if !inPrev(id) {
			d.Added = append(d.Added, id)
		} else if !same(id) {
			d.Edited = append(d.Edited, id)
		}
	}
	for _, id := range prevIDs {
		if !inNext(id) {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Edited)
	return d
}

func diffRequirements(prev, next []entity.Requirement) entity.DiffSet {
	pm := make(map[string]entity.Requirement, len(prev))
	nm := make(map[string]entity.Requirement, len(next))
	var pids, nids []string
	for _, r := range prev {
		pm[r.ID] = r
		pids = append(pids, r.ID)
	}
	for _, r := range next {
		nm[r.ID] = r
		nids = append(nids, r.ID)
	}
	return diffKeyed(pids, nids,
		func(id string) bool { _, ok := pm[id]; return ok },
		func(id string) bool { _, ok := nm[id]; return ok },
		func(id string) bool {
			a, b := pm[id], nm[id]
			return a.Text == b.Text && a.Category == b.Category && a.Priority == b.Priority
		})
}

func diffPricing(prev, next []entity.PricingLine) entity.DiffSet {
	pm := make(map[string]entity.PricingLine, len(prev))
	nm := make(map[string]entity.PricingLine, len(next))
	var pids, nids []string
	for _, p := range prev {
		pm[p.ID] = p
		pids = append(pids, p.ID)
	}
	for _, p := range next {
		nm[p.ID] = p
		nids = append(nids, p.ID)
	}
	return diffKeyed(pids, nids,
		func(id string) bool { _, ok := pm[id]; return ok },
		func(id string) bool { _, ok := nm[id]; return ok },
		func(id string) bool {
			a, b := pm[id], nm[id]
			return a.Item == b.Item && a.Amount == b.Amount
		})
}

func diffSchedule(prev, next []entity.ScheduleItem) entity.DiffSet {
	pm := make(map[string]entity.ScheduleItem, len(prev))
	nm := make(map[string]entity.ScheduleItem, len(next))
	var pids, nids []string
	for _, s := range prev {
		pm[s.ID] = s
		pids = append(pids, s.ID)
	}
	for _, s := range next {
		nm[s.ID] = s
		nids = append(nids, s.ID)
	}
	return diffKeyed(pids, nids,
		func(id string) bool { _, ok := pm[id]; return ok },
		func(id string) bool { _, ok := nm[id]; return ok },
		func(id string) bool {
			a, b := pm[id], nm[id]
			return a.Milestone == b.Milestone && a.Due == b.Due
		})
}

func diffRisks(prev, next []entity.Risk) entity.DiffSet {
	pm := make(map[string]entity.Risk, len(prev))
	nm := make(map[string]entity.Risk, len(next))
	var pids, nids []string
	for _, r := range prev {
		pm[r.ID] = r
		pids = append(pids, r.ID)
	}
	for _, r := range next {
		nm[r.ID] = r
		nids = append(nids, r.ID)
	}
	return diffKeyed(pids, nids,
		func(id string) bool { _, ok := pm[id]; return ok },
		func(id string) bool { _, ok := nm[id]; return ok },
		func(id string) bool {
			a, b := pm[id], nm[id]
			return a.Text == b.Text && a.Severity == b.Severity
		})
}

func diffAssumptions(prev, next []entity.Assumption) entity.DiffSet {
	pm := make(map[string]entity.Assumption, len(prev))
	nm := make(map[string]entity.Assumption, len(next))
	var pids, nids []string
	for _, a := range prev {
		pm[a.ID] = a
		pids = append(pids, a.ID)
	}
	for _, a := range next {
		nm[a.ID] = a
		nids = append(nids, a.ID)
	}
	return diffKeyed(pids, nids,
		func(id string) bool { _, ok := pm[id]; return ok },
		func(id string) bool { _, ok := nm[id]; return ok },
		func(id string) bool {
			return pm[id].Text == nm[id].Text
		})
}
