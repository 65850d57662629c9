// Package export renders structured workbooks to XLSX files and reads
// edited XLSX files back into the sheet model for re-import.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bidworks/rfp-analyzer/constants"
	"github.com/bidworks/rfp-analyzer/internal/entity"
	"github.com/bidworks/rfp-analyzer/internal/workbook"
)

// Service produces XLSX bytes from workbooks and parses them back.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WorkbookXLSX renders wb as a multi-sheet XLSX file.
func (s *Service) WorkbookXLSX(wb *entity.StructuredWorkbook) ([]byte, error) {
	return s.SheetsXLSX(workbook.ToSheets(wb))
}

// SheetsXLSX writes the sheet model to XLSX bytes. Sheets are emitted
// in canonical order; sheets absent from the model are skipped.
func (s *Service) SheetsXLSX(sheets workbook.Sheets) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	rows := 0
	for _, name := range constants.SheetOrder() {
		records, ok := sheets[name]
		if !ok {
			continue
		}
		if index, _ := f.GetSheetIndex(name); index == -1 {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		cols := workbook.Columns(name)
		for i, h := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(name, cell, h)
		}
		for r, record := range records {
			for c, col := range cols {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				_ = f.SetCellValue(name, cell, record[col])
			}
			rows++
		}

		widenColumns(f, name, cols)
	}

	// excelize seeds every file with "Sheet1"; drop it when our own
	// sheets exist so readers see the canonical layout only.
	if len(sheets) > 0 {
		_ = f.DeleteSheet("Sheet1")
	}
	if index, _ := f.GetSheetIndex(constants.SheetProject); index != -1 {
		f.SetActiveSheet(index)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"sheets", len(sheets),
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ReadXLSX parses XLSX bytes into the sheet model. Only sheets with a
// canonical name are read; the first row of each is taken as headers
// and matched against the canonical columns by name.
func (s *Service) ReadXLSX(data []byte) (workbook.Sheets, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx open: %w", err)
	}
	defer f.Close()

	sheets := workbook.Sheets{}
	for _, name := range constants.SheetOrder() {
		if index, _ := f.GetSheetIndex(name); index == -1 {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("xlsx read %s: %w", name, err)
		}
		if len(rows) == 0 {
			sheets[name] = nil
			continue
		}

		headers := rows[0]
		records := make([]map[string]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			record := make(map[string]string, len(headers))
			for i, h := range headers {
				if h == "" {
					continue
				}
				if i < len(row) {
					record[h] = row[i]
				} else {
					record[h] = ""
				}
			}
			records = append(records, record)
		}
		sheets[name] = records
	}

	s.logger.Info("import.xlsx.ok", "sheets", len(sheets))
	return sheets, nil
}

func widenColumns(f *excelize.File, sheet string, cols []string) {
	for i, col := range cols {
		width := 18.0
		switch col {
		case "Requirement", "Risk", "Assumption", "Item", "Milestone", "Value":
			width = 60
		case "Title":
			width = 40
		case "ID", "Score":
			width = 10
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, name, name, width)
	}
}
