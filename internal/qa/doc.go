// Package qa implements the single-pass data-quality pipeline for tabular
// healthcare encounter records.
//
// Given an in-memory table and a set of role bindings (identifier columns,
// an age column, a time column, outlier-candidate columns), the pipeline
// runs a fixed sequence of checks and normalizations and produces one
// structured report:
//
//  1. Schema resolution: every bound column must exist, or the run aborts
//     with a SchemaError before any other processing.
//  2. Missingness audit: per-column missing counts/rates plus a per-row
//     missingness pattern.
//  3. Duplicate summary: exact duplicate rows, overall and keyed on the
//     identifier columns.
//  4. Censored-value normalization: sentinel tokens like ">89" in the age
//     column become the usable threshold value with a censoring flag kept
//     in an auxiliary column.
//  5. Time-feature derivation: clock-time encodings (HH:MM, HH:MM:SS, or
//     bare hhmm digits) become an hour_of_day column; invalid encodings
//     derive a missing value, never a clamped one.
//  6. IQR outlier flagging: per candidate column, values strictly outside
//     [Q1-k*IQR, Q3+k*IQR] are marked in an auxiliary flag column.
//     Flags are advisory metadata; values are never altered or removed.
//
// The pipeline mutates the table only by appending annotation columns and
// by replacing censored age tokens with their normalized numeric values.
// Per-cell parse failures never abort a run; they are tallied per column
// in the report. Running twice on the same table and options yields
// identical reports and output tables.
//
// Usage:
//
//	p, err := qa.New(qa.Options{
//	    AgeColumn:      "age",
//	    TimeColumn:     "admit_time",
//	    OutlierColumns: []string{"length_of_stay"},
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	report, err := p.Run(ctx, tbl)
package qa
