package workbook

import (
	"strings"
	"testing"
	"time"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

func sampleWorkbook() *entity.StructuredWorkbook {
	return &entity.StructuredWorkbook{
		Project: entity.ProjectInfo{
			Title:       "Scoreboard Replacement",
			Client:      "Riverside USD",
			Venue:       "Memorial Stadium",
			GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Requirements: []entity.Requirement{
			{ID: "REQ-1", Text: "The display must support 5000 nits.", Category: "Display Specs", Priority: "High", Source: "Specs", Citation: "chunk-0"},
			{ID: "REQ-2", Text: "Submittals are required within 30 days.", Category: "General", Priority: "High", Source: "Admin", Citation: "chunk-1"},
		},
		Pricing: []entity.PricingLine{
			{ID: "PRC-1", Item: "Base bid", Amount: "$125,000.00", Source: "Bid Form", Citation: "chunk-2"},
		},
		Schedule: []entity.ScheduleItem{
			{ID: "SCH-1", Milestone: "Substantial completion", Due: "June 15, 2026", Source: "Schedule", Citation: "chunk-1"},
		},
		Risks: []entity.Risk{
			{ID: "RSK-1", Text: "Liquidated damages of $1,000 per day.", Severity: "High", Source: "Terms", Citation: "chunk-2"},
		},
		Assumptions: []entity.Assumption{
			{ID: "ASM-1", Text: "Primary power by others.", Source: "Scope", Citation: "chunk-0"},
		},
		Sources: []entity.SourceRef{
			{ID: "chunk-0", Title: "Specs", Score: 11.2, Label: constants.LabelRelevant},
			{ID: "chunk-1", Title: "Admin", Score: 4.1, Label: constants.LabelMaybe},
			{ID: "chunk-2", Title: "Terms", Score: 8.9, Label: constants.LabelRelevant},
		},
	}
}

func TestRoundTrip_SheetsReproduceRecords(t *testing.T) {
	wb := sampleWorkbook()
	parsed, stats := ParseSheets(ToSheets(wb), nil)
	if parsed == nil {
		t.Fatal("round-trip parse returned nil")
	}
	if stats.InferredCitations != 0 {
		t.Errorf("clean round-trip should not exercise the citation shim, got %d", stats.InferredCitations)
	}

	if len(parsed.Requirements) != 2 || parsed.Requirements[0] != wb.Requirements[0] {
		t.Errorf("requirements did not survive: %+v", parsed.Requirements)
	}
	if len(parsed.Pricing) != 1 || parsed.Pricing[0] != wb.Pricing[0] {
		t.Errorf("pricing did not survive: %+v", parsed.Pricing)
	}
	if len(parsed.Schedule) != 1 || parsed.Schedule[0] != wb.Schedule[0] {
		t.Errorf("schedule did not survive: %+v", parsed.Schedule)
	}
	if len(parsed.Risks) != 1 || parsed.Risks[0] != wb.Risks[0] {
		t.Errorf("risks did not survive: %+v", parsed.Risks)
	}
	if len(parsed.Assumptions) != 1 || parsed.Assumptions[0] != wb.Assumptions[0] {
		t.Errorf("assumptions did not survive: %+v", parsed.Assumptions)
	}
	if parsed.Project.Title != wb.Project.Title ||
		parsed.Project.Client != wb.Project.Client ||
		parsed.Project.Venue != wb.Project.Venue ||
		!parsed.Project.GeneratedAt.Equal(wb.Project.GeneratedAt) {
		t.Errorf("project did not survive: %+v", parsed.Project)
	}

	// Every citation must still resolve after the round-trip.
	for _, r := range parsed.Requirements {
		if _, ok := parsed.SourceByID(r.Citation); !ok {
			t.Errorf("citation %q unresolved after round-trip", r.Citation)
		}
	}
	for _, s := range parsed.Sources {
		orig, ok := wb.SourceByID(s.ID)
		if !ok || orig.Score != s.Score || orig.Label != s.Label {
			t.Errorf("source changed in round-trip: %+v vs %+v", orig, s)
		}
	}
}

func TestParseSheets_RejectsNonWorkbook(t *testing.T) {
	wb, _ := ParseSheets(Sheets{"Totals": {{"A": "1"}}}, nil)
	if wb != nil {
		t.Fatal("expected nil for sheets with no structured content")
	}

	// Project-only input is still not a workbook export.
	wb, _ = ParseSheets(Sheets{
		constants.SheetProject: {{"Field": "Title", "Value": "X"}},
	}, nil)
	if wb != nil {
		t.Fatal("expected nil when all five collections are empty")
	}
}

func TestParseSheets_CitationRecoveryShim(t *testing.T) {
	sheets := Sheets{
		constants.SheetRequirements: {
			{"ID": "REQ-1", "Requirement": "The display must support 5000 nits.", "Source": "Specs (chunk-4)", "Citation": ""},
			{"ID": "REQ-2", "Requirement": "Submittals are required.", "Source": "Admin", "Citation": ""},
		},
	}
	wb, stats := ParseSheets(sheets, nil)
	if wb == nil {
		t.Fatal("unexpected nil workbook")
	}
	if wb.Requirements[0].Citation != "chunk-4" {
		t.Errorf("citation = %q, want inferred chunk-4", wb.Requirements[0].Citation)
	}
	if wb.Requirements[1].Citation != "" {
		t.Errorf("citation = %q, want empty (provenance lost)", wb.Requirements[1].Citation)
	}
	if stats.InferredCitations != 1 {
		t.Errorf("inferred citations = %d, want 1", stats.InferredCitations)
	}
}

func TestParseSheets_SkipsBlankRows(t *testing.T) {
	sheets := Sheets{
		constants.SheetRequirements: {
			{"ID": "", "Requirement": "orphan"},
			{"ID": "REQ-1", "Requirement": ""},
			{"ID": "REQ-2", "Requirement": "The system shall work."},
		},
	}
	wb, _ := ParseSheets(sheets, nil)
	if wb == nil || len(wb.Requirements) != 1 || wb.Requirements[0].ID != "REQ-2" {
		t.Fatalf("parsed = %+v", wb)
	}
}

func TestDiff_NilPrevious(t *testing.T) {
	if d := Diff(nil, sampleWorkbook()); d != nil {
		t.Fatal("first import must diff to nil")
	}
}

func TestDiff_EditedDetectedByID(t *testing.T) {
	prev := sampleWorkbook()
	next := sampleWorkbook()
	next.Requirements[0].Text = "The display must support 6000 nits."

	d := Diff(prev, next)
	if d == nil {
		t.Fatal("unexpected nil diff")
	}
	if len(d.Requirements.Edited) != 1 || d.Requirements.Edited[0] != "REQ-1" {
		t.Errorf("edited = %v, want [REQ-1]", d.Requirements.Edited)
	}
	if len(d.Requirements.Added) != 0 || len(d.Requirements.Removed) != 0 {
		t.Errorf("added/removed should be empty: %+v", d.Requirements)
	}
}

func TestDiff_SourceAndCitationExcludedFromComparison(t *testing.T) {
	prev := sampleWorkbook()
	next := sampleWorkbook()
	next.Requirements[0].Source = "Renamed Sheet"
	next.Requirements[0].Citation = ""

	d := Diff(prev, next)
	if !d.Requirements.Empty() {
		t.Errorf("provenance-only changes must not count as edits: %+v", d.Requirements)
	}
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	prev := sampleWorkbook()
	next := sampleWorkbook()
	next.Risks = []entity.Risk{
		{ID: "RSK-2", Text: "New termination clause.", Severity: "High"},
	}

	d := Diff(prev, next)
	if len(d.Risks.Added) != 1 || d.Risks.Added[0] != "RSK-2" {
		t.Errorf("added = %v", d.Risks.Added)
	}
	if len(d.Risks.Removed) != 1 || d.Risks.Removed[0] != "RSK-1" {
		t.Errorf("removed = %v", d.Risks.Removed)
	}
}

func TestDiff_IDChangeIsRemovePlusAdd(t *testing.T) {
	prev := sampleWorkbook()
	next := sampleWorkbook()
	next.Assumptions[0].ID = "ASM-9"

	d := Diff(prev, next)
	if len(d.Assumptions.Edited) != 0 {
		t.Errorf("id change must not report as edited: %+v", d.Assumptions)
	}
	if len(d.Assumptions.Added) != 1 || len(d.Assumptions.Removed) != 1 {
		t.Errorf("want removed+added, got %+v", d.Assumptions)
	}
}

func TestToMarkdown(t *testing.T) {
	md := ToMarkdown(sampleWorkbook())
	for _, want := range []string{
		"# Scoreboard Replacement",
		"## Requirements (2)",
		"[chunk-0]",
		"**Client:** Riverside USD",
		"## Sources (3)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestToMarkdown_SkipsEmptySections(t *testing.T) {
	wb := &entity.StructuredWorkbook{Project: entity.ProjectInfo{Title: "Empty"}}
	md := ToMarkdown(wb)
	if strings.Contains(md, "## Pricing") {
		t.Error("empty sections must be omitted")
	}
}
