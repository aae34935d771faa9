package qa

import (
	"strings"
)

// Default pipeline settings.
const (
	// DefaultIQRMultiplier is the conventional Tukey fence multiplier.
	DefaultIQRMultiplier = 1.5
	// minOutlierValues is the smallest usable sample for quartile bounds.
	minOutlierValues = 4
	// HourColumn is the name of the derived time-feature column.
	HourColumn = "hour_of_day"
	// CensorFlagSuffix is appended to a normalized column's name to form
	// its auxiliary censoring-flag column.
	CensorFlagSuffix = "_is_censored"
	// OutlierFlagSuffix is appended to a candidate column's name to form
	// its auxiliary outlier-flag column.
	OutlierFlagSuffix = "_iqr_outlier"
)

// DefaultMissingTokens are the sentinel strings treated as missing values
// in addition to the empty cell.
var DefaultMissingTokens = []string{"NA", "N/A", "NULL", "NaN", "?", "-"}

// Options binds table columns to their roles and tunes the pipeline.
// Every named column must exist in the input table; the zero value for a
// role leaves that stage unconfigured (it is skipped).
type Options struct {
	// IDColumns identify a row (encounter/patient keys). They are used
	// for the duplicate summary only and are never transformed.
	IDColumns []string

	// AgeColumn is routed through censored-value normalization.
	AgeColumn string

	// TimeColumn is routed through time-feature derivation.
	TimeColumn string

	// OutlierColumns are each routed through the IQR flagger.
	OutlierColumns []string

	// IQRMultiplier is the fence multiplier k in [Q1-k*IQR, Q3+k*IQR].
	// Zero means DefaultIQRMultiplier.
	IQRMultiplier float64

	// MissingTokens are sentinel strings counted as missing. Matching is
	// case-insensitive after trimming. Nil means DefaultMissingTokens.
	MissingTokens []string
}

// withDefaults returns a copy of o with unset fields filled in.
func (o Options) withDefaults() Options {
	if o.IQRMultiplier == 0 {
		o.IQRMultiplier = DefaultIQRMultiplier
	}
	if o.MissingTokens == nil {
		o.MissingTokens = DefaultMissingTokens
	}
	return o
}

// missingSet builds the normalized sentinel lookup used by every stage.
func (o Options) missingSet() map[string]struct{} {
	set := make(map[string]struct{}, len(o.MissingTokens))
	for _, tok := range o.MissingTokens {
		set[strings.ToLower(strings.TrimSpace(tok))] = struct{}{}
	}
	return set
}

// bindings holds the resolved column indexes for every configured role.
// An index of -1 means the role is unbound.
type bindings struct {
	idCols      []int
	ageCol      int
	timeCol     int
	outlierCols []int
}

// ColumnMissingness records missing-value counts for one column.
type ColumnMissingness struct {
	Column       string  `json:"column"`
	TotalRows    int     `json:"total_rows"`
	MissingCount int     `json:"missing_count"`
	MissingRate  float64 `json:"missing_rate"`
	// Applicable is false when the table has no rows and the rate is
	// therefore undefined (reported as zero).
	Applicable bool `json:"applicable"`
}

// MissingnessSummary aggregates per-column and per-row missingness.
type MissingnessSummary struct {
	OverallRate float64             `json:"overall_missing_rate"`
	Applicable  bool                `json:"applicable"`
	ByColumn    []ColumnMissingness `json:"by_column"`
	TopMissing  []ColumnMissingness `json:"top_missing"`

	// RowPatterns holds one bitstring per row ("0" present, "1" missing,
	// one digit per column in table order), the raw material for a
	// missingness matrix rendered by a reporting collaborator.
	RowPatterns []string `json:"-"`

	// PatternCounts tallies distinct row patterns.
	PatternCounts map[string]int `json:"pattern_counts"`
}

// CensorSummary records the outcome of censored-value normalization for
// one column.
type CensorSummary struct {
	Column        string   `json:"column"`
	FlagColumn    string   `json:"flag_column"`
	Parsed        int      `json:"parsed"`
	Censored      int      `json:"censored"`
	ParseFailures int      `json:"parse_failures"`
	Missing       int      `json:"missing_after_parse"`
	MaxValue      *float64 `json:"max_value,omitempty"`
}

// TimeSummary records the outcome of time-feature derivation.
type TimeSummary struct {
	Column        string `json:"column"`
	DerivedColumn string `json:"derived_column"`
	Derived       int    `json:"derived"`
	Invalid       int    `json:"invalid"`
	MissingInput  int    `json:"missing_input"`
}

// OutlierSummary records the IQR bounds and flag counts for one column.
// When Applicable is false (fewer than four usable values, or zero IQR)
// no value was flagged and the bounds are zero.
type OutlierSummary struct {
	Column      string  `json:"column"`
	FlagColumn  string  `json:"flag_column"`
	Applicable  bool    `json:"applicable"`
	Q1          float64 `json:"q1"`
	Q3          float64 `json:"q3"`
	IQR         float64 `json:"iqr"`
	Lower       float64 `json:"lower_bound"`
	Upper       float64 `json:"upper_bound"`
	NonMissing  int     `json:"non_missing"`
	NonNumeric  int     `json:"non_numeric"`
	Flagged     int     `json:"outlier_count"`
	FlaggedRate float64 `json:"outlier_rate"`
}

// DuplicateSummary records exact-duplicate row counts.
type DuplicateSummary struct {
	// DuplicateRows counts rows identical to an earlier row across all
	// input columns.
	DuplicateRows int `json:"duplicate_rows"`

	// IDColumns and DuplicateByID cover the identifier-key subset;
	// IDApplicable is false when no identifier columns are bound.
	IDColumns     []string `json:"id_columns,omitempty"`
	DuplicateByID int      `json:"duplicate_by_id_cols"`
	IDApplicable  bool     `json:"id_applicable"`
}

// Report is the immutable result of one pipeline run. It is assembled
// once, after every stage has completed, and is safe to serialize as-is.
type Report struct {
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`

	Missingness  MissingnessSummary        `json:"missingness"`
	Duplicates   DuplicateSummary          `json:"duplicates"`
	Censoring    *CensorSummary            `json:"censoring,omitempty"`
	TimeFeatures *TimeSummary              `json:"time_features,omitempty"`
	Outliers     map[string]OutlierSummary `json:"outliers_iqr"`

	TotalFlaggedCells  int `json:"total_flagged_cells"`
	TotalParseFailures int `json:"total_parse_failures"`
}
