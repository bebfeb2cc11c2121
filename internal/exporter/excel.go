package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter provides xlsx export functionality
type ExcelWriter struct{}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// WriteExcel writes headers and records to a single-sheet xlsx file
func (w *ExcelWriter) WriteExcel(filePath, sheetName string, headers []string, records [][]string) error {
	slog.Info("Writing Excel file",
		slog.String("file_path", filePath),
		slog.String("sheet", sheetName),
		slog.Int("record_count", len(records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := w.build(sheetName, headers, records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Stream writes a single-sheet workbook to any writer. Used by the download
// handlers to serialize straight onto the HTTP response.
func (w *ExcelWriter) Stream(out io.Writer, sheetName string, headers []string, records [][]string) error {
	f, err := w.build(sheetName, headers, records)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) build(sheetName string, headers []string, records [][]string) (*excelize.File, error) {
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := excelize.NewFile()
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to rename sheet: %w", err)
		}
	}

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheetName, cell, &row)
	}

	rowIdx := 1
	if len(headers) > 0 {
		if err := writeRow(rowIdx, headers); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
		rowIdx++
	}
	for i, record := range records {
		if err := writeRow(rowIdx, record); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
		rowIdx++
	}

	return f, nil
}
