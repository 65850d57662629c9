// Package pipeline composes the analysis stages: chunk the raw text,
// extract document metadata, score every chunk, and build the structured
// workbook.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bidworks/rfp-analyzer/internal/chunker"
	"github.com/bidworks/rfp-analyzer/internal/classify"
	"github.com/bidworks/rfp-analyzer/internal/entity"
	"github.com/bidworks/rfp-analyzer/internal/extract"
)

// cancelCheckEvery is how many chunks are scored between context checks.
// Scoring never blocks; this only lets a caller abandon a very large run.
const cancelCheckEvery = 8

const chunkTitleMaxLen = 60

// Analyzer runs the full extraction pipeline. Stateless and safe for
// concurrent use; each Analyze call is pure over its input text.
type Analyzer struct {
	logger *slog.Logger
	scorer *classify.Scorer
}

func NewAnalyzer(scorer *classify.Scorer, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger, scorer: scorer}
}

// Analyze chunks rawText, scores each chunk, and builds the workbook.
// The only error is context cancellation; partial results are discarded,
// which is always safe because no external resource is held.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) (*entity.Analysis, error) {
	start := time.Now()

	sections := chunker.Split(rawText)
	meta := extract.ExtractMeta(rawText)

	chunks := make([]entity.Chunk, 0, len(sections))
	for i, text := range sections {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sc := a.scorer.Score(text)
		chunks = append(chunks, entity.Chunk{
			ID:               fmt.Sprintf("chunk-%d", i),
			Title:            chunkTitle(text, i),
			Text:             text,
			Label:            sc.Label,
			Score:            sc.Value,
			Reason:           sc.Reason,
			CategoryHits:     sc.CategoryHits,
			RiskHits:         sc.RiskHits,
			MatchedKeywords:  sc.MatchedKeywords,
			BoosterHits:      sc.BoosterHits,
			DrawingCandidate: sc.DrawingCandidate,
		})
	}

	wb := extract.BuildWorkbook(chunks, meta)

	analysis := &entity.Analysis{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Meta:        meta,
		Chunks:      chunks,
		Workbook:    wb,
	}

	counts := analysis.LabelCounts()
	a.logger.Info("analyze.ok",
		"run_id", analysis.RunID,
		"chunks", len(chunks),
		"relevant", counts["relevant"],
		"maybe", counts["maybe"],
		"irrelevant", counts["irrelevant"],
		"records", wb.RecordCount(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return analysis, nil
}

// chunkTitle derives a display title from the chunk's first line.
func chunkTitle(text string, idx int) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > chunkTitleMaxLen {
			line = line[:chunkTitleMaxLen-1] + "…"
		}
		return line
	}
	return fmt.Sprintf("Section %d", idx+1)
}
