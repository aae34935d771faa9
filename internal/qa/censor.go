package qa

import (
	"strconv"
	"strings"

	"ehrqa/internal/table"
)

// censorResolution is the outcome of parsing one raw cell of a censored
// numeric column.
type censorResolution struct {
	value    float64
	censored bool
	ok       bool
}

// parseCensored resolves one raw token of a clinically censored numeric
// field. A "greater-than" censor (">89", "> 89") resolves to the censor
// threshold itself, the best available estimate, with the censored flag
// set; coercing it to missing or zero would bias downstream statistics
// toward younger populations. A plain number resolves unchanged. Any
// other form, including less-than and range censors, is a parse failure
// until the censoring grammar is extended.
func parseCensored(raw string) censorResolution {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, ">") {
		rest := strings.TrimSpace(s[1:])
		if threshold, err := strconv.ParseFloat(rest, 64); err == nil {
			return censorResolution{value: threshold, censored: true, ok: true}
		}
		return censorResolution{}
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return censorResolution{value: v, ok: true}
	}
	return censorResolution{}
}

// normalizeCensored rewrites the configured column in place so every cell
// holds either a plain numeric value or a missing marker, and appends a
// boolean flag column recording which values were censor-imputed. Parse
// failures become missing cells and are tallied, never fatal.
func normalizeCensored(tbl *table.Table, col int, sentinels map[string]struct{}) (CensorSummary, error) {
	name := tbl.Columns()[col]
	summary := CensorSummary{
		Column:     name,
		FlagColumn: name + CensorFlagSuffix,
	}

	rows := tbl.NumRows()
	flags := make([]string, rows)
	for r := 0; r < rows; r++ {
		flags[r] = "false"
		raw := tbl.Cell(r, col)

		if isMissing(raw, sentinels) {
			summary.Missing++
			tbl.SetCell(r, col, "")
			continue
		}

		res := parseCensored(raw)
		if !res.ok {
			summary.ParseFailures++
			summary.Missing++
			tbl.SetCell(r, col, "")
			continue
		}

		summary.Parsed++
		if res.censored {
			summary.Censored++
			flags[r] = "true"
		}
		if summary.MaxValue == nil || res.value > *summary.MaxValue {
			v := res.value
			summary.MaxValue = &v
		}
		tbl.SetCell(r, col, strconv.FormatFloat(res.value, 'f', -1, 64))
	}

	if err := tbl.AddColumn(summary.FlagColumn, flags); err != nil {
		return CensorSummary{}, err
	}
	return summary, nil
}
