package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

var (
	reRequirement  = regexp.MustCompile(`(?i)\b(must|required|shall|submittal|compliance|deliverable|specification)\b`)
	reReqHigh      = regexp.MustCompile(`(?i)\b(must|required|shall)\b`)
	reDollarAmount = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
	reScheduleWord = regexp.MustCompile(`(?i)\b(schedule|milestone|completion|deadline|notice to proceed|delivery|due)\b`)
	reDate         = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}|\b\d{1,2}/\d{1,2}/\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b`)
	reRiskLine     = regexp.MustCompile(`(?i)(liquidated\s+damages|performance\s+bond|bid\s+bond|retainage|indemnif\w*|penalt\w*|termination|insurance|damages)`)
	reRiskHigh     = regexp.MustCompile(`(?i)(liquidated\s+damages|termination|indemnif\w*|penalt\w*)`)
	reAssumption   = regexp.MustCompile(`(?i)\b(excluded|exclusions?|by others|owner[- ]provided|owner[- ]furnished|not included|assumed?|assumptions?|allowance)\b`)

	reNormSpace = regexp.MustCompile(`\s+`)
)

// BuildWorkbook walks the relevant and maybe chunks line by line and
// classifies each line into the structured collections. A line may match
// multiple record types; the collections are not mutually exclusive.
// Irrelevant chunks are dropped entirely.
func BuildWorkbook(chunks []entity.Chunk, meta entity.RfpMeta) *entity.StructuredWorkbook {
	wb := &entity.StructuredWorkbook{
		Project: entity.ProjectInfo{
			Title:       meta.Project(),
			Client:      meta.Client(),
			Venue:       meta.Venue(),
			GeneratedAt: time.Now().UTC(),
		},
	}

	var (
		reqs  []entity.Requirement
		price []entity.PricingLine
		sched []entity.ScheduleItem
		risks []entity.Risk
		assum []entity.Assumption
	)

	for _, chunk := range chunks {
		if chunk.Label != constants.LabelRelevant && chunk.Label != constants.LabelMaybe {
			continue
		}
		wb.Sources = append(wb.Sources, entity.SourceRef{
			ID:    chunk.ID,
			Title: chunk.Title,
			Score: chunk.Score,
			Label: chunk.Label,
		})

		category := "General"
		if len(chunk.CategoryHits) > 0 {
			category = chunk.CategoryHits[0]
		}

		for _, line := range strings.Split(chunk.Text, "\n") {
			line = strings.TrimSpace(line)
			if len(line) < constants.MinLineLength {
				continue
			}

			if reRequirement.MatchString(line) {
				priority := constants.PriorityMedium
				if reReqHigh.MatchString(line) {
					priority = constants.PriorityHigh
				}
				reqs = append(reqs, entity.Requirement{
					Text:     line,
					Category: category,
					Priority: priority,
					Source:   chunk.Title,
					Citation: chunk.ID,
				})
			}

			// Every dollar amount on the line becomes its own record.
			for _, amount := range reDollarAmount.FindAllString(line, -1) {
				price = append(price, entity.PricingLine{
					Item:     truncate(line, constants.PricingItemMaxLen),
					Amount:   amount,
					Source:   chunk.Title,
					Citation: chunk.ID,
				})
			}

			if reScheduleWord.MatchString(line) || reDate.MatchString(line) {
				due := constants.ScheduleDueTBD
				if d := reDate.FindString(line); d != "" {
					due = d
				}
				sched = append(sched, entity.ScheduleItem{
					Milestone: line,
					Due:       due,
					Source:    chunk.Title,
					Citation:  chunk.ID,
				})
			}

			if reRiskLine.MatchString(line) || len(chunk.RiskHits) > 0 {
				severity := constants.SeverityMedium
				if reRiskHigh.MatchString(line) {
					severity = constants.SeverityHigh
				}
				risks = append(risks, entity.Risk{
					Text:     line,
					Severity: severity,
					Source:   chunk.Title,
					Citation: chunk.ID,
				})
			}

			if reAssumption.MatchString(line) {
				assum = append(assum, entity.Assumption{
					Text:     line,
					Source:   chunk.Title,
					Citation: chunk.ID,
				})
			}
		}
	}

	wb.Requirements = dedupeRequirements(reqs)
	wb.Pricing = dedupePricing(price)
	wb.Schedule = dedupeSchedule(sched)
	wb.Risks = dedupeRisks(risks)
	wb.Assumptions = dedupeAssumptions(assum)
	return wb
}

// normKey is the case/whitespace-insensitive dedupe key.
func normKey(s string) string {
	return reNormSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// IDs are assigned only to surviving, deduplicated records, so they stay
// dense and monotonic (REQ-1, REQ-2, ...).
func dedupeRequirements(in []entity.Requirement) []entity.Requirement {
	seen := make(map[string]bool, len(in))
	out := make([]entity.Requirement, 0, len(in))
	for _, r := range in {
		k := normKey(r.Text)
		if seen[k] {
			continue
		}
		seen[k] = true
		r.ID = fmt.Sprintf("%s-%d", constants.IDPrefixRequirement, len(out)+1)
		out = append(out, r)
		if len(out) == constants.MaxRecordsPerCollection {
			break
		}
	}
	return out
}

func dedupePricing(in []entity.PricingLine) []entity.PricingLine {
	// Keyed on item+amount: one line can legitimately carry several
	// distinct amounts, and each is its own record.
	seen := make(map[string]bool, len(in))
	out := make([]entity.PricingLine, 0, len(in))
	for _, p := range in {
		k := normKey(p.Item) + "|" + p.Amount
		if seen[k] {
			continue
		}
		seen[k] = true
		p.ID = fmt.Sprintf("%s-%d", constants.IDPrefixPricing, len(out)+1)
		out = append(out, p)
		if len(out) == constants.MaxRecordsPerCollection {
			break
		}
	}
	return out
}

func dedupeSchedule(in []entity.ScheduleItem) []entity.ScheduleItem {
	seen := make(map[string]bool, len(in))
	out := make([]entity.ScheduleItem, 0, len(in))
	for _, s := range in {
		k := normKey(s.Milestone)
		if seen[k] {
			continue
		}
		seen[k] = true
		s.ID = fmt.Sprintf("%s-%d", constants.IDPrefixSchedule, len(out)+1)
		out = append(out, s)
		if len(out) == constants.MaxRecordsPerCollection {
			break
		}
	}
	return out
}

func dedupeRisks(in []entity.Risk) []entity.Risk {
	seen := make(map[string]bool, len(in))
	out := make([]entity.Risk, 0, len(in))
	for _, r := range in {
		k := normKey(r.Text)
		if seen[k] {
			continue
		}
		seen[k] = true
		r.ID = fmt.Sprintf("%s-%d", constants.IDPrefixRisk, len(out)+1)
		out = append(out, r)
		if len(out) == constants.MaxRecordsPerCollection {
			break
		}
	}
	return out
}

func dedupeAssumptions(in []entity.Assumption) []entity.Assumption {
	seen := make(map[string]bool, len(in))
	out := make([]entity.Assumption, 0, len(in))
	for _, a := range in {
		k := normKey(a.Text)
		if seen[k] {
			continue
		}
		seen[k] = true
		a.ID = fmt.Sprintf("%s-%d", constants.IDPrefixAssumption, len(out)+1)
		out = append(out, a)
		if len(out) == constants.MaxRecordsPerCollection {
			break
		}
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
