package qa

import (
	"context"
	"fmt"
	"log/slog"

	"ehrqa/internal/table"
)

// Pipeline runs the QA stages over one table per invocation. It holds no
// state between runs; concurrent Runs on distinct tables are safe.
type Pipeline struct {
	opts   Options
	logger *slog.Logger
}

// New creates a pipeline with the given options. Unset options take
// defaults; invalid options are rejected here so Run can assume them.
func New(opts Options, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	if opts.IQRMultiplier <= 0 {
		return nil, fmt.Errorf("iqr multiplier must be positive, got %g", opts.IQRMultiplier)
	}
	seen := make(map[string]struct{}, len(opts.OutlierColumns))
	for _, name := range opts.OutlierColumns {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("outlier column listed twice: %s", name)
		}
		seen[name] = struct{}{}
	}

	return &Pipeline{opts: opts, logger: logger}, nil
}

// Run executes the pipeline: resolve bindings, audit missingness,
// summarize duplicates, normalize censored values, derive time features,
// flag outliers, assemble the report. The table is mutated in place:
// censored cells are normalized and annotation columns are appended;
// nothing is ever removed. Fatal errors (schema violations) abort before
// any transform; per-cell parse failures are tallied in the report.
func (p *Pipeline) Run(ctx context.Context, tbl *table.Table) (*Report, error) {
	p.logger.InfoContext(ctx, "starting qa run",
		"rows", tbl.NumRows(),
		"columns", tbl.NumColumns(),
	)

	b, err := resolveBindings(tbl, p.opts)
	if err != nil {
		p.logger.ErrorContext(ctx, "schema resolution failed", "error", err)
		return nil, err
	}

	if tbl.NumRows() == 0 {
		p.logger.WarnContext(ctx, "input table has no rows; rates reported as not applicable")
	}

	sentinels := p.opts.missingSet()
	res := stageResults{
		columnNames: tbl.Columns(),
		rows:        tbl.NumRows(),
		outliers:    make(map[string]OutlierSummary, len(b.outlierCols)),
	}

	res.missingness = auditMissingness(tbl, sentinels)
	p.logger.InfoContext(ctx, "missingness audited",
		"overall_rate", res.missingness.OverallRate,
		"patterns", len(res.missingness.PatternCounts),
	)

	res.duplicates = summarizeDuplicates(tbl, p.opts, b)

	if b.ageCol >= 0 {
		summary, err := normalizeCensored(tbl, b.ageCol, sentinels)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", p.opts.AgeColumn, err)
		}
		res.censoring = &summary
		p.logger.InfoContext(ctx, "censored values normalized",
			"column", summary.Column,
			"censored", summary.Censored,
			"parse_failures", summary.ParseFailures,
		)
	}

	if b.timeCol >= 0 {
		summary, err := deriveTimeFeatures(tbl, b.timeCol, sentinels)
		if err != nil {
			return nil, fmt.Errorf("derive time features from %s: %w", p.opts.TimeColumn, err)
		}
		res.timeFeats = &summary
		p.logger.InfoContext(ctx, "time features derived",
			"column", summary.Column,
			"derived", summary.Derived,
			"invalid", summary.Invalid,
		)
	}

	for i, col := range b.outlierCols {
		summary, err := flagOutliers(tbl, col, p.opts.IQRMultiplier, sentinels)
		if err != nil {
			return nil, fmt.Errorf("flag outliers in %s: %w", p.opts.OutlierColumns[i], err)
		}
		res.outliers[summary.Column] = summary
		p.logger.InfoContext(ctx, "outliers flagged",
			"column", summary.Column,
			"flagged", summary.Flagged,
			"applicable", summary.Applicable,
		)
	}

	report, err := assembleReport(p.opts, res)
	if err != nil {
		return nil, fmt.Errorf("assemble report: %w", err)
	}
	p.logger.InfoContext(ctx, "qa run complete",
		"flagged_cells", report.TotalFlaggedCells,
		"parse_failures", report.TotalParseFailures,
	)
	return report, nil
}
