package qa

import (
	"math"
	"sort"
	"strconv"

	"ehrqa/internal/table"
)

// percentile calculates the value at a given percentile of a sorted
// sample using linear interpolation between closest ranks. The same
// method is used for every quartile so report numbers are reproducible
// across re-runs on identical input.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// flagOutliers appends a boolean flag column marking values of the
// configured column that fall strictly outside the Tukey fences
// [Q1-k*IQR, Q3+k*IQR]. Flags are advisory metadata for clinical review:
// extreme values (a very long stay, say) are frequently real signal, so
// the underlying cells are never altered or removed. Columns with fewer
// than four usable values, or a zero IQR, are reported as not applicable
// and nothing is flagged.
func flagOutliers(tbl *table.Table, col int, k float64, sentinels map[string]struct{}) (OutlierSummary, error) {
	name := tbl.Columns()[col]
	summary := OutlierSummary{
		Column:     name,
		FlagColumn: name + OutlierFlagSuffix,
	}

	rows := tbl.NumRows()
	values := make([]float64, rows)
	usable := make([]bool, rows)
	var sample []float64

	for r := 0; r < rows; r++ {
		raw := tbl.Cell(r, col)
		if isMissing(raw, sentinels) {
			continue
		}
		summary.NonMissing++
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			summary.NonNumeric++
			continue
		}
		values[r] = v
		usable[r] = true
		sample = append(sample, v)
	}

	flags := make([]string, rows)
	for r := range flags {
		if usable[r] {
			flags[r] = "false"
		}
	}

	if len(sample) >= minOutlierValues {
		sort.Float64s(sample)
		q1 := percentile(sample, 0.25)
		q3 := percentile(sample, 0.75)
		iqr := q3 - q1
		if iqr > 0 {
			summary.Applicable = true
			summary.Q1 = q1
			summary.Q3 = q3
			summary.IQR = iqr
			summary.Lower = q1 - k*iqr
			summary.Upper = q3 + k*iqr

			for r := 0; r < rows; r++ {
				if usable[r] && (values[r] < summary.Lower || values[r] > summary.Upper) {
					flags[r] = "true"
					summary.Flagged++
				}
			}
			if summary.NonMissing > 0 {
				summary.FlaggedRate = float64(summary.Flagged) / float64(summary.NonMissing)
			}
		}
	}

	if err := tbl.AddColumn(summary.FlagColumn, flags); err != nil {
		return OutlierSummary{}, err
	}
	return summary, nil
}
