package qa

import (
	"sort"
	"strings"

	"ehrqa/internal/table"
)

// isMissing reports whether a cell counts as missing: empty after
// trimming, or one of the configured sentinel tokens (case-insensitive).
func isMissing(cell string, sentinels map[string]struct{}) bool {
	s := strings.TrimSpace(cell)
	if s == "" {
		return true
	}
	_, ok := sentinels[strings.ToLower(s)]
	return ok
}

// auditMissingness computes per-column missing counts and rates plus the
// per-row missingness pattern. It reads the table only; idempotent.
func auditMissingness(tbl *table.Table, sentinels map[string]struct{}) MissingnessSummary {
	columns := tbl.Columns()
	rows := tbl.NumRows()

	summary := MissingnessSummary{
		Applicable:    rows > 0,
		ByColumn:      make([]ColumnMissingness, len(columns)),
		PatternCounts: make(map[string]int),
	}

	counts := make([]int, len(columns))
	var pattern strings.Builder
	for r := 0; r < rows; r++ {
		pattern.Reset()
		for c := range columns {
			if isMissing(tbl.Cell(r, c), sentinels) {
				counts[c]++
				pattern.WriteByte('1')
			} else {
				pattern.WriteByte('0')
			}
		}
		p := pattern.String()
		summary.RowPatterns = append(summary.RowPatterns, p)
		summary.PatternCounts[p]++
	}

	totalMissing := 0
	for c, name := range columns {
		cm := ColumnMissingness{
			Column:       name,
			TotalRows:    rows,
			MissingCount: counts[c],
			Applicable:   rows > 0,
		}
		if rows > 0 {
			cm.MissingRate = float64(counts[c]) / float64(rows)
		}
		summary.ByColumn[c] = cm
		totalMissing += counts[c]
	}

	if rows > 0 && len(columns) > 0 {
		summary.OverallRate = float64(totalMissing) / float64(rows*len(columns))
	}

	summary.TopMissing = topMissing(summary.ByColumn, 10)
	return summary
}

// topMissing returns up to n columns ranked by missing rate, highest
// first; ties break by column order so the ranking is deterministic.
func topMissing(byColumn []ColumnMissingness, n int) []ColumnMissingness {
	ranked := make([]ColumnMissingness, len(byColumn))
	copy(ranked, byColumn)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MissingRate > ranked[j].MissingRate
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
