package qa

import (
	"fmt"
)

// stageResults carries the intermediate outputs into report assembly.
type stageResults struct {
	columnNames []string
	rows        int
	missingness MissingnessSummary
	duplicates  DuplicateSummary
	censoring   *CensorSummary
	timeFeats   *TimeSummary
	outliers    map[string]OutlierSummary
}

// assembleReport merges the stage outputs into one report. It recomputes
// nothing; its only failure mode is an upstream stage having produced no
// output for a column it was configured to handle.
func assembleReport(opts Options, res stageResults) (*Report, error) {
	if opts.AgeColumn != "" && res.censoring == nil {
		return nil, fmt.Errorf("no censoring summary produced for column %s", opts.AgeColumn)
	}
	if opts.TimeColumn != "" && res.timeFeats == nil {
		return nil, fmt.Errorf("no time-feature summary produced for column %s", opts.TimeColumn)
	}
	for _, name := range opts.OutlierColumns {
		if _, ok := res.outliers[name]; !ok {
			return nil, fmt.Errorf("no outlier summary produced for column %s", name)
		}
	}

	report := &Report{
		Rows:         res.rows,
		Columns:      len(res.columnNames),
		ColumnNames:  res.columnNames,
		Missingness:  res.missingness,
		Duplicates:   res.duplicates,
		Censoring:    res.censoring,
		TimeFeatures: res.timeFeats,
		Outliers:     res.outliers,
	}

	if res.censoring != nil {
		report.TotalParseFailures += res.censoring.ParseFailures
	}
	if res.timeFeats != nil {
		report.TotalParseFailures += res.timeFeats.Invalid
	}
	for _, o := range res.outliers {
		report.TotalFlaggedCells += o.Flagged
	}
	return report, nil
}
