// Package importer loads tabular datasets from disk into the in-memory
// table model. CSV is the primary format; Excel workbooks are accepted
// for datasets exported straight from clinical reporting tools.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "ehrqa/internal/errors"
	"ehrqa/internal/table"
)

// ReadCSV parses CSV data into a table. The first record is the header;
// header names are trimmed and a UTF-8 BOM on the first name is removed.
// Short data rows are padded with missing cells; rows wider than the
// header are a parse error identifying the line.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		header[i] = name
	}

	tbl, err := table.New(header)
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return tbl, nil
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		for i, v := range rec {
			rec[i] = strings.TrimSpace(v)
		}
		if err := tbl.AppendRow(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// LoadCSV reads a CSV file from disk into a table.
func LoadCSV(path string, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	tbl, err := ReadCSV(f)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("parse %s", path), err)
	}

	logger.Info("loaded csv dataset",
		slog.String("path", path),
		slog.Int("rows", tbl.NumRows()),
		slog.Int("columns", tbl.NumColumns()))
	return tbl, nil
}
