package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

func testAnalysis(t *testing.T, at time.Time) *entity.Analysis {
	t.Helper()
	return &entity.Analysis{
		RunID:       uuid.New(),
		GeneratedAt: at,
		Meta: entity.RfpMeta{
			ClientName:   &entity.MetaField{Value: "Riverside USD"},
			ProjectTitle: &entity.MetaField{Value: "Display Replacement"},
		},
		Chunks: []entity.Chunk{
			{ID: "chunk-0", Label: constants.LabelRelevant},
			{ID: "chunk-1", Label: constants.LabelIrrelevant},
			{ID: "chunk-2", Label: constants.LabelMaybe},
		},
		Workbook: &entity.StructuredWorkbook{
			Requirements: []entity.Requirement{{ID: "REQ-1", Text: "nits"}},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testAnalysis(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	newer := testAnalysis(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	for _, a := range []*entity.Analysis{older, newer} {
		if err := s.RecordRun(ctx, a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].RunID != newer.RunID.String() {
		t.Errorf("newest first: got %s", runs[0].RunID)
	}
	got := runs[0]
	if got.Chunks != 3 || got.Relevant != 1 || got.Maybe != 1 || got.Irrelevant != 1 {
		t.Errorf("counts = %+v", got)
	}
	if got.Records != 1 {
		t.Errorf("records = %d, want 1", got.Records)
	}
	if got.Client != "Riverside USD" {
		t.Errorf("client = %q", got.Client)
	}
	if !got.GeneratedAt.Equal(newer.GeneratedAt) {
		t.Errorf("generated_at = %v", got.GeneratedAt)
	}
}

func TestRecordRun_ReplacesSameRunID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := testAnalysis(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err := s.RecordRun(ctx, a); err != nil {
		t.Fatalf("record: %v", err)
	}
	a.Chunks = a.Chunks[:1]
	if err := s.RecordRun(ctx, a); err != nil {
		t.Fatalf("re-record: %v", err)
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1 after replace", len(runs))
	}
	if runs[0].Chunks != 1 {
		t.Errorf("chunks = %d, want replaced value 1", runs[0].Chunks)
	}
}

func TestRecordRun_NilWorkbook(t *testing.T) {
	s := openTestStore(t)
	a := testAnalysis(t, time.Now().UTC())
	a.Workbook = nil
	if err := s.RecordRun(context.Background(), a); err != nil {
		t.Fatalf("record with nil workbook: %v", err)
	}
	runs, _ := s.ListRuns(context.Background(), 1)
	if runs[0].Records != 0 {
		t.Errorf("records = %d, want 0", runs[0].Records)
	}
}

func TestListRuns_LimitAndDefault(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		a := testAnalysis(t, base.Add(time.Duration(i)*time.Hour))
		if err := s.RecordRun(context.Background(), a); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	runs, err := s.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("limit 2 returned %d", len(runs))
	}
	all, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("list default: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("default limit returned %d", len(all))
	}
}

func TestHealthCheck(t *testing.T) {
	s := openTestStore(t)
	if err := s.HealthCheck(context.Background(), time.Second); err != nil {
		t.Fatalf("health: %v", err)
	}
}
