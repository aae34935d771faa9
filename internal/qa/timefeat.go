package qa

import (
	"strconv"
	"strings"

	"ehrqa/internal/table"
)

// parseHourOfDay derives the hour of day (0-23) from a raw clock-time
// encoding. Accepted forms: "HH:MM", "HH:MM:SS", and bare 3-4 digit
// "hmm"/"hhmm" strings. Out-of-range components are rejected rather than
// clamped; clamping would misrepresent a data error as a legitimate
// near-midnight encounter. Pure function of its input.
func parseHourOfDay(raw string) (int, bool) {
	s := strings.TrimSpace(raw)

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, false
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, false
			}
			nums[i] = n
		}
		if nums[0] > 23 || nums[1] > 59 || (len(nums) == 3 && nums[2] > 59) {
			return 0, false
		}
		return nums[0], true
	}

	// Bare digit encodings: last two digits are minutes.
	if len(s) < 3 || len(s) > 4 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	hour, minute := n/100, n%100
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour, true
}

// deriveTimeFeatures appends an hour-of-day column derived from the
// configured time column. Missing inputs derive missing values; invalid
// encodings derive missing values and are tallied as parse failures.
func deriveTimeFeatures(tbl *table.Table, col int, sentinels map[string]struct{}) (TimeSummary, error) {
	summary := TimeSummary{
		Column:        tbl.Columns()[col],
		DerivedColumn: HourColumn,
	}

	rows := tbl.NumRows()
	hours := make([]string, rows)
	for r := 0; r < rows; r++ {
		raw := tbl.Cell(r, col)
		if isMissing(raw, sentinels) {
			summary.MissingInput++
			continue
		}
		hour, ok := parseHourOfDay(raw)
		if !ok {
			summary.Invalid++
			continue
		}
		hours[r] = strconv.Itoa(hour)
		summary.Derived++
	}

	if err := tbl.AddColumn(HourColumn, hours); err != nil {
		return TimeSummary{}, err
	}
	return summary, nil
}
