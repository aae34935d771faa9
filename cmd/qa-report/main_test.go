package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehrqa/internal/config"
	"ehrqa/internal/qa"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  ", nil},
		{"single", "age", []string{"age"}},
		{"multiple with spaces", "age, length_of_stay ,heart_rate", []string{"age", "length_of_stay", "heart_rate"}},
		{"trailing comma", "age,", []string{"age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitColumns(tt.in))
		})
	}
}

func TestFlagColumns(t *testing.T) {
	assert.Empty(t, flagColumns(qa.Options{}))
	assert.Equal(t,
		[]string{"los_iqr_outlier", "age_iqr_outlier"},
		flagColumns(qa.Options{OutlierColumns: []string{"los", "age"}}))
}

func TestRun(t *testing.T) {
	writeInput := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "encounters.csv")
		data := "encounter_id,age,admit_time,length_of_stay\n" +
			"e1,45,1430,2\n" +
			"e2,>89,0815,3\n" +
			"e3,37,2561,4\n" +
			"e4,bad,1105,5\n" +
			"e5,61,,90\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		return path
	}

	opts := qa.Options{
		IDColumns:      []string{"encounter_id"},
		AgeColumn:      "age",
		TimeColumn:     "admit_time",
		OutlierColumns: []string{"length_of_stay"},
	}

	t.Run("writes all artifacts", func(t *testing.T) {
		outDir := t.TempDir()
		cfg := config.Default()

		err := run(context.Background(), writeInput(t), "", outDir, cfg, opts, nil)
		require.NoError(t, err)

		cleaned, err := os.ReadFile(filepath.Join(outDir, cfg.Output.CleanedName))
		require.NoError(t, err)
		assert.Contains(t, string(cleaned), "age_is_censored")
		assert.Contains(t, string(cleaned), "hour_of_day")
		assert.Contains(t, string(cleaned), "length_of_stay_iqr_outlier")

		flags, err := os.ReadFile(filepath.Join(outDir, cfg.Output.FlagsName))
		require.NoError(t, err)
		assert.Equal(t, "length_of_stay_iqr_outlier\nfalse\nfalse\nfalse\nfalse\ntrue\n", string(flags))

		reportData, err := os.ReadFile(filepath.Join(outDir, cfg.Output.ReportName))
		require.NoError(t, err)
		var report qa.Report
		require.NoError(t, json.Unmarshal(reportData, &report))
		assert.Equal(t, 5, report.Rows)
		assert.Equal(t, 1, report.Censoring.Censored)
		assert.Equal(t, 1, report.TimeFeatures.Invalid)
		assert.Equal(t, 1, report.Outliers["length_of_stay"].Flagged)
	})

	t.Run("missing bound column fails before outputs", func(t *testing.T) {
		outDir := t.TempDir()
		badOpts := opts
		badOpts.OutlierColumns = []string{"heart_rate"}

		err := run(context.Background(), writeInput(t), "", outDir, config.Default(), badOpts, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "heart_rate")

		_, statErr := os.Stat(filepath.Join(outDir, config.Default().Output.CleanedName))
		assert.True(t, os.IsNotExist(statErr), "no cleaned output should be written")
	})

	t.Run("missing input file", func(t *testing.T) {
		err := run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "",
			t.TempDir(), config.Default(), opts, nil)
		assert.Error(t, err)
	})
}
