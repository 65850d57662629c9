// rfpcore analyzes RFP documents for LED display projects: it chunks and
// classifies raw text, extracts a structured workbook, produces cost
// estimates, and re-imports edited workbooks to diff against a prior run.
//
// Usage:
//
//	rfpcore analyze  -in rfp.txt [-rules rules.json] [-md out.md] [-xlsx out.xlsx] [-json out.json]
//	rfpcore estimate -in rfp.txt [-title T] [-client C] [-venue V] [-margin 0.15]
//	rfpcore import   -xlsx edited.xlsx [-prev prior.xlsx]
//	rfpcore runs     [-limit 20]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/bidworks/rfp-analyzer/internal/classify"
	"github.com/bidworks/rfp-analyzer/internal/common"
	"github.com/bidworks/rfp-analyzer/internal/entity"
	"github.com/bidworks/rfp-analyzer/internal/estimator"
	"github.com/bidworks/rfp-analyzer/internal/export"
	"github.com/bidworks/rfp-analyzer/internal/history"
	"github.com/bidworks/rfp-analyzer/internal/pipeline"
	"github.com/bidworks/rfp-analyzer/internal/workbook"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	if len(os.Args) < 2 {
		printError("usage: rfpcore <analyze|estimate|import|runs> [flags]\n")
		os.Exit(2)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:], cfg, logger)
	case "estimate":
		err = runEstimate(os.Args[2:], cfg)
	case "import":
		err = runImport(os.Args[2:], logger)
	case "runs":
		err = runRuns(os.Args[2:], cfg, logger)
	default:
		printError("unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runAnalyze(args []string, cfg *common.Config, logger *slog.Logger) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var (
		in        = fs.String("in", "", "input RFP text file (required)")
		rulesPath = fs.String("rules", cfg.Rules.Path, "classifier rules JSON override")
		mdOut     = fs.String("md", "", "write workbook markdown to this file")
		xlsxOut   = fs.String("xlsx", "", "write workbook XLSX to this file")
		jsonOut   = fs.String("json", "", "write full analysis JSON to this file")
		noDB      = fs.Bool("no-history", false, "skip recording the run")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	rules := classify.DefaultRuleSet()
	if *rulesPath != "" {
		rules, err = classify.LoadRules(*rulesPath, logger)
		if err != nil {
			return err
		}
	}
	scorer, err := classify.NewScorer(rules, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	analysis, err := pipeline.NewAnalyzer(scorer, logger).Analyze(ctx, string(raw))
	if err != nil {
		return err
	}

	if !*noDB {
		store, err := history.Open(cfg.History.DBPath, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.RecordRun(ctx, analysis); err != nil {
			return err
		}
	}

	if *mdOut != "" {
		if err := os.WriteFile(*mdOut, []byte(workbook.ToMarkdown(analysis.Workbook)), 0644); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
	}
	if *xlsxOut != "" {
		data, err := export.NewService(logger).WorkbookXLSX(analysis.Workbook)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*xlsxOut, data, 0644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
	}
	if *jsonOut != "" {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(*jsonOut, data, 0644); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}

	counts := analysis.LabelCounts()
	fmt.Printf("Analysis complete (run %s)\n", analysis.RunID)
	fmt.Printf("- Chunks: %d (relevant %d, maybe %d, irrelevant %d)\n",
		len(analysis.Chunks), counts["relevant"], counts["maybe"], counts["irrelevant"])
	fmt.Printf("- Workbook records: %d\n", analysis.Workbook.RecordCount())
	return nil
}

func runEstimate(args []string, cfg *common.Config) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	var (
		in     = fs.String("in", "", "input RFP text file (required)")
		title  = fs.String("title", "", "project title")
		client = fs.String("client", "", "client name")
		venue  = fs.String("venue", "", "venue name")
		margin = fs.Float64("margin", cfg.Estimate.MarginTarget, "target gross margin")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	result := estimator.Run(string(raw), estimator.Options{
		ProjectTitle: *title,
		ClientName:   *client,
		VenueName:    *venue,
		MarginTarget: *margin,
	})

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runImport(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	var (
		xlsxIn = fs.String("xlsx", "", "edited workbook XLSX (required)")
		prevIn = fs.String("prev", "", "prior workbook XLSX to diff against")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *xlsxIn == "" {
		return fmt.Errorf("-xlsx is required")
	}

	svc := export.NewService(logger)
	wb, stats, err := loadWorkbookXLSX(svc, *xlsxIn, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d rows (%d citations recovered)\n", stats.Rows, stats.InferredCitations)

	if *prevIn != "" {
		prior, _, err := loadWorkbookXLSX(svc, *prevIn, logger)
		if err != nil {
			return err
		}
		summary := workbook.Diff(prior, wb)
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}

func loadWorkbookXLSX(svc *export.Service, path string, logger *slog.Logger) (*entity.StructuredWorkbook, workbook.ImportStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, workbook.ImportStats{}, fmt.Errorf("read xlsx: %w", err)
	}
	sheets, err := svc.ReadXLSX(data)
	if err != nil {
		return nil, workbook.ImportStats{}, err
	}
	wb, stats := workbook.ParseSheets(sheets, logger)
	if wb == nil {
		return nil, stats, fmt.Errorf("%s: %w", path, common.ErrBadWorkbook)
	}
	return wb, stats, nil
}

func runRuns(args []string, cfg *common.Config, logger *slog.Logger) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := history.Open(cfg.History.DBPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.HealthCheck(ctx, cfg.History.HealthTimeout); err != nil {
		return fmt.Errorf("history db unhealthy: %w", err)
	}

	runs, err := store.ListRuns(ctx, *limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  chunks=%d records=%d  %s\n",
			r.GeneratedAt.Format("2006-01-02 15:04"), r.RunID, r.Chunks, r.Records, r.Project)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
	}
	return nil
}
