// Package workbook implements the round-trip operations on the
// structured workbook: markdown rendering, tabular sheet serialization,
// import parsing, and version diffing.
package workbook

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

// Sheets is the tabular interchange structure: sheet name → ordered rows,
// each row keyed by column header. Produced for a spreadsheet-writing
// collaborator and consumed back on import.
type Sheets map[string][]map[string]string

// Columns returns the column order for a sheet, for writers that need a
// deterministic layout.
func Columns(sheet string) []string {
	switch sheet {
	case constants.SheetProject:
		return []string{"Field", "Value"}
	case constants.SheetRequirements:
		return []string{"ID", "Requirement", "Category", "Priority", "Source", "Citation"}
	case constants.SheetPricing:
		return []string{"ID", "Item", "Amount", "Source", "Citation"}
	case constants.SheetSchedule:
		return []string{"ID", "Milestone", "Due", "Source", "Citation"}
	case constants.SheetRisks:
		return []string{"ID", "Risk", "Severity", "Source", "Citation"}
	case constants.SheetAssumptions:
		return []string{"ID", "Assumption", "Source", "Citation"}
	case constants.SheetSources:
		return []string{"ID", "Title", "Score", "Label"}
	}
	return nil
}

// ToSheets serializes a workbook into the tabular interchange structure.
func ToSheets(wb *entity.StructuredWorkbook) Sheets {
	s := make(Sheets, 7)

	s[constants.SheetProject] = []map[string]string{
		{"Field": "Title", "Value": wb.Project.Title},
		{"Field": "Client", "Value": wb.Project.Client},
		{"Field": "Venue", "Value": wb.Project.Venue},
		{"Field": "Generated At", "Value": wb.Project.GeneratedAt.UTC().Format(time.RFC3339)},
	}

	reqs := make([]map[string]string, 0, len(wb.Requirements))
	for _, r := range wb.Requirements {
		reqs = append(reqs, map[string]string{
			"ID": r.ID, "Requirement": r.Text, "Category": r.Category,
			"Priority": r.Priority, "Source": r.Source, "Citation": r.Citation,
		})
	}
	s[constants.SheetRequirements] = reqs

	price := make([]map[string]string, 0, len(wb.Pricing))
	for _, p := range wb.Pricing {
		price = append(price, map[string]string{
			"ID": p.ID, "Item": p.Item, "Amount": p.Amount,
			"Source": p.Source, "Citation": p.Citation,
		})
	}
	s[constants.SheetPricing] = price

	sched := make([]map[string]string, 0, len(wb.Schedule))
	for _, it := range wb.Schedule {
		sched = append(sched, map[string]string{
			"ID": it.ID, "Milestone": it.Milestone, "Due": it.Due,
			"Source": it.Source, "Citation": it.Citation,
		})
	}
	s[constants.SheetSchedule] = sched

	risks := make([]map[string]string, 0, len(wb.Risks))
	for _, r := range wb.Risks {
		risks = append(risks, map[string]string{
			"ID": r.ID, "Risk": r.Text, "Severity": r.Severity,
			"Source": r.Source, "Citation": r.Citation,
		})
	}
	s[constants.SheetRisks] = risks

	assum := make([]map[string]string, 0, len(wb.Assumptions))
	for _, a := range wb.Assumptions {
		assum = append(assum, map[string]string{
			"ID": a.ID, "Assumption": a.Text,
			"Source": a.Source, "Citation": a.Citation,
		})
	}
	s[constants.SheetAssumptions] = assum

	sources := make([]map[string]string, 0, len(wb.Sources))
	for _, src := range wb.Sources {
		sources = append(sources, map[string]string{
			"ID": src.ID, "Title": src.Title,
			"Score": strconv.FormatFloat(src.Score, 'f', 2, 64),
			"Label": string(src.Label),
		})
	}
	s[constants.SheetSources] = sources

	return s
}

// ImportStats reports what the import parser did, notably how often the
// legacy citation-recovery shim fired.
type ImportStats struct {
	Rows              int
	InferredCitations int
}

// reLegacyCitation recovers provenance from older exports that embedded
// the chunk id in the source label instead of a Citation column.
var reLegacyCitation = regexp.MustCompile(`\((chunk-\d+)\)`)

// ParseSheets rebuilds a workbook from externally edited sheet rows.
// Returns a nil workbook when all five structured collections parse to
// empty: that signals "not a workbook export" and the caller must reject
// the import rather than silently accepting it.
func ParseSheets(sheets Sheets, logger *slog.Logger) (*entity.StructuredWorkbook, ImportStats) {
	if logger == nil {
		logger = slog.Default()
	}
	wb := &entity.StructuredWorkbook{}
	stats := ImportStats{}

	for _, row := range sheets[constants.SheetProject] {
		switch row["Field"] {
		case "Title":
			wb.Project.Title = row["Value"]
		case "Client":
			wb.Project.Client = row["Value"]
		case "Venue":
			wb.Project.Venue = row["Value"]
		case "Generated At":
			if t, err := time.Parse(time.RFC3339, row["Value"]); err == nil {
				wb.Project.GeneratedAt = t
			}
		}
	}

	citation := func(row map[string]string) string {
		if c := strings.TrimSpace(row["Citation"]); c != "" {
			return c
		}
		if m := reLegacyCitation.FindStringSubmatch(row["Source"]); m != nil {
			stats.InferredCitations++
			logger.Warn("import.citation.inferred", "id", row["ID"], "source", row["Source"])
			return m[1]
		}
		return ""
	}

	for _, row := range sheets[constants.SheetRequirements] {
		r := entity.Requirement{
			ID:       strings.TrimSpace(row["ID"]),
			Text:     row["Requirement"],
			Category: row["Category"],
			Priority: row["Priority"],
			Source:   row["Source"],
			Citation: citation(row),
		}
		if r.ID == "" || strings.TrimSpace(r.Text) == "" {
			continue
		}
		wb.Requirements = append(wb.Requirements, r)
	}

	for _, row := range sheets[constants.SheetPricing] {
		p := entity.PricingLine{
			ID:       strings.TrimSpace(row["ID"]),
			Item:     row["Item"],
			Amount:   row["Amount"],
			Source:   row["Source"],
			Citation: citation(row),
		}
		if p.ID == "" || strings.TrimSpace(p.Item) == "" {
			continue
		}
		wb.Pricing = append(wb.Pricing, p)
	}

	for _, row := range sheets[constants.SheetSchedule] {
		it := entity.ScheduleItem{
			ID:        strings.TrimSpace(row["ID"]),
			Milestone: row["Milestone"],
			Due:       row["Due"],
			Source:    row["Source"],
			Citation:  citation(row),
		}
		if it.ID == "" || strings.TrimSpace(it.Milestone) == "" {
			continue
		}
		if strings.TrimSpace(it.Due) == "" {
			it.Due = constants.ScheduleDueTBD
		}
		wb.Schedule = append(wb.Schedule, it)
	}

	for _, row := range sheets[constants.SheetRisks] {
		r := entity.Risk{
			ID:       strings.TrimSpace(row["ID"]),
			Text:     row["Risk"],
			Severity: row["Severity"],
			Source:   row["Source"],
			Citation: citation(row),
		}
		if r.ID == "" || strings.TrimSpace(r.Text) == "" {
			continue
		}
		wb.Risks = append(wb.Risks, r)
	}

	for _, row := range sheets[constants.SheetAssumptions] {
		a := entity.Assumption{
			ID:       strings.TrimSpace(row["ID"]),
			Text:     row["Assumption"],
			Source:   row["Source"],
			Citation: citation(row),
		}
		if a.ID == "" || strings.TrimSpace(a.Text) == "" {
			continue
		}
		wb.Assumptions = append(wb.Assumptions, a)
	}

	for _, row := range sheets[constants.SheetSources] {
		src := entity.SourceRef{
			ID:    strings.TrimSpace(row["ID"]),
			Title: row["Title"],
		}
		if src.ID == "" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(row["Score"]), 64); err == nil {
			src.Score = f
		}
		if l, ok := constants.CanonicalizeLabel(row["Label"]); ok {
			src.Label = l
		}
		wb.Sources = append(wb.Sources, src)
	}

	stats.Rows = wb.RecordCount() + len(wb.Sources)
	if !wb.HasRecords() {
		return nil, stats
	}
	return wb, stats
}
