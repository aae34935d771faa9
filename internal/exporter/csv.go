// Package exporter persists QA pipeline outputs: the cleaned dataset and
// outlier-flag table as CSV, and the QA report as JSON.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "ehrqa/internal/errors"
	"ehrqa/internal/table"
)

// CSVWriter provides CSV export functionality for tables.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	// Columns restricts the output to the named columns, in the given
	// order. Nil writes every column.
	Columns []string

	// BOMPrefix adds a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
}

// WriteTable writes a table to a CSV file, creating the target directory
// when needed.
func (w *CSVWriter) WriteTable(path string, tbl *table.Table, options WriteOptions) error {
	columns := options.Columns
	if columns == nil {
		columns = tbl.Columns()
	}
	indexes := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := tbl.ColumnIndex(name)
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("column %s", name))
		}
		indexes[i] = idx
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewIOError("create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("create %s", path), err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewIOError("write BOM", err)
		}
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(columns); err != nil {
		return apperrors.NewIOError("write header", err)
	}

	record := make([]string, len(indexes))
	for r := 0; r < tbl.NumRows(); r++ {
		for i, idx := range indexes {
			record[i] = tbl.Cell(r, idx)
		}
		if err := cw.Write(record); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("write row %d", r+1), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("flush %s", path), err)
	}

	w.logger.Info("wrote csv file",
		slog.String("path", path),
		slog.Int("rows", tbl.NumRows()),
		slog.Int("columns", len(columns)))
	return nil
}
