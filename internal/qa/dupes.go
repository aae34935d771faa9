package qa

import (
	"strings"

	"ehrqa/internal/table"
)

// summarizeDuplicates counts rows identical to an earlier row, both
// across all columns and across the identifier-key subset. Read-only.
func summarizeDuplicates(tbl *table.Table, opts Options, b bindings) DuplicateSummary {
	summary := DuplicateSummary{}

	seen := make(map[string]struct{}, tbl.NumRows())
	for r := 0; r < tbl.NumRows(); r++ {
		key := rowKey(tbl.Row(r))
		if _, dup := seen[key]; dup {
			summary.DuplicateRows++
		} else {
			seen[key] = struct{}{}
		}
	}

	if len(b.idCols) == 0 {
		return summary
	}
	summary.IDApplicable = true
	summary.IDColumns = append(summary.IDColumns, opts.IDColumns...)

	seenID := make(map[string]struct{}, tbl.NumRows())
	cells := make([]string, len(b.idCols))
	for r := 0; r < tbl.NumRows(); r++ {
		for i, c := range b.idCols {
			cells[i] = tbl.Cell(r, c)
		}
		key := rowKey(cells)
		if _, dup := seenID[key]; dup {
			summary.DuplicateByID++
		} else {
			seenID[key] = struct{}{}
		}
	}
	return summary
}

// rowKey joins cells with an unlikely separator; \x1f is the ASCII unit
// separator, which cannot appear in CSV-sourced values in practice.
func rowKey(cells []string) string {
	return strings.Join(cells, "\x1f")
}
