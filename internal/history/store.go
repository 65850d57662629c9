// Package history persists a summary row per analysis run so reviewers
// can trace how a document's extraction evolved across re-analyses.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id       TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	project      TEXT NOT NULL DEFAULT '',
	client       TEXT NOT NULL DEFAULT '',
	venue        TEXT NOT NULL DEFAULT '',
	chunks       INTEGER NOT NULL,
	relevant     INTEGER NOT NULL,
	maybe        INTEGER NOT NULL,
	irrelevant   INTEGER NOT NULL,
	records      INTEGER NOT NULL,
	label_counts TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_generated_at ON analysis_runs (generated_at);
`

// RunSummary is one stored row, the durable trace of an analysis run.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Project     string    `json:"project"`
	Client      string    `json:"client"`
	Venue       string    `json:"venue"`
	Chunks      int       `json:"chunks"`
	Relevant    int       `json:"relevant"`
	Maybe       int       `json:"maybe"`
	Irrelevant  int       `json:"irrelevant"`
	Records     int       `json:"records"`
}

// Store records analysis runs in a local SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the run database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY on concurrent RecordRun calls.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	logger.Info("history.open.ok", "path", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck pings the database with a bounded deadline.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// RecordRun stores a summary row for the run. Replaces any prior row
// with the same run id.
func (s *Store) RecordRun(ctx context.Context, a *entity.Analysis) error {
	counts := a.LabelCounts()
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("encode label counts: %w", err)
	}

	records := 0
	if a.Workbook != nil {
		records = a.Workbook.RecordCount()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO analysis_runs
			(run_id, generated_at, project, client, venue,
			 chunks, relevant, maybe, irrelevant, records, label_counts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RunID.String(),
		a.GeneratedAt.UTC().Format(time.RFC3339Nano),
		a.Meta.Project(),
		a.Meta.Client(),
		a.Meta.Venue(),
		len(a.Chunks),
		counts[constants.LabelRelevant],
		counts[constants.LabelMaybe],
		counts[constants.LabelIrrelevant],
		records,
		string(countsJSON),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	s.logger.Info("history.record.ok",
		"run_id", a.RunID.String(),
		"chunks", len(a.Chunks),
		"records", records,
	)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, generated_at, project, client, venue,
		       chunks, relevant, maybe, irrelevant, records
		FROM analysis_runs
		ORDER BY generated_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var generated string
		if err := rows.Scan(&r.RunID, &generated, &r.Project, &r.Client, &r.Venue,
			&r.Chunks, &r.Relevant, &r.Maybe, &r.Irrelevant, &r.Records); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339Nano, generated); perr == nil {
			r.GeneratedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
