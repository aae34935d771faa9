package importer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "ehrqa/internal/errors"
	"ehrqa/internal/table"
)

// LoadExcel reads one sheet of an Excel workbook into a table. An empty
// sheet name selects the first sheet. The first row is the header; data
// rows shorter than the header are padded with missing cells.
func LoadExcel(path, sheet string, logger *slog.Logger) (*table.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", path), nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("read sheet %s of %s", sheet, path), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %s of %s has no header row", sheet, path), nil)
	}

	header := rows[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}
	tbl, err := table.New(header)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid header in sheet %s of %s", sheet, path), err)
	}

	for i, row := range rows[1:] {
		for j, v := range row {
			row[j] = strings.TrimSpace(v)
		}
		if err := tbl.AppendRow(row); err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %s row %d", sheet, i+2), err)
		}
	}

	logger.Info("loaded excel dataset",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", tbl.NumRows()),
		slog.Int("columns", tbl.NumColumns()))
	return tbl, nil
}
