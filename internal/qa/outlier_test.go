package qa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single value", []float64{7}, 0.5, 7},
		{"lower edge", []float64{1, 2, 3, 4}, 0, 1},
		{"upper edge", []float64{1, 2, 3, 4}, 1, 4},
		{"interpolated q1", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"median of even sample", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"exact rank", []float64{1, 2, 3, 4, 5}, 0.25, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentile(tt.sorted, tt.p), 1e-12)
		})
	}
}

func TestFlagOutliers(t *testing.T) {
	sentinels := Options{}.withDefaults().missingSet()

	t.Run("flags strictly outside the fences", func(t *testing.T) {
		tbl := newTestTable(t, []string{"los"},
			[]string{"1"},
			[]string{"2"},
			[]string{"3"},
			[]string{"4"},
			[]string{"100"},
		)

		summary, err := flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)
		require.True(t, summary.Applicable)

		// Sorted sample [1 2 3 4 100]: Q1=2, Q3=4, IQR=2, fences [-1, 7].
		assert.InDelta(t, 2, summary.Q1, 1e-12)
		assert.InDelta(t, 4, summary.Q3, 1e-12)
		assert.LessOrEqual(t, summary.Q1, summary.Q3)
		assert.InDelta(t, -1, summary.Lower, 1e-12)
		assert.InDelta(t, 7, summary.Upper, 1e-12)

		flags, err := tbl.Column("los" + OutlierFlagSuffix)
		require.NoError(t, err)
		assert.Equal(t, []string{"false", "false", "false", "false", "true"}, flags)
		assert.Equal(t, 1, summary.Flagged)
		assert.InDelta(t, 0.2, summary.FlaggedRate, 1e-12)
	})

	t.Run("values on the fence are not flagged", func(t *testing.T) {
		tbl := newTestTable(t, []string{"v"},
			[]string{"1"},
			[]string{"2"},
			[]string{"3"},
			[]string{"4"},
			[]string{"7"}, // exactly the upper fence for this sample
		)

		summary, err := flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)
		// Sorted [1 2 3 4 7]: Q1=2, Q3=4, upper fence 7.
		require.True(t, summary.Applicable)
		assert.InDelta(t, 7, summary.Upper, 1e-12)
		assert.Equal(t, 0, summary.Flagged)
	})

	t.Run("missing and non-numeric cells get empty flags", func(t *testing.T) {
		tbl := newTestTable(t, []string{"v"},
			[]string{"1"},
			[]string{""},
			[]string{"2"},
			[]string{"NA"},
			[]string{"oops"},
			[]string{"3"},
			[]string{"4"},
			[]string{"50"},
		)

		summary, err := flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)
		require.True(t, summary.Applicable)

		flags, err := tbl.Column("v" + OutlierFlagSuffix)
		require.NoError(t, err)
		assert.Equal(t, []string{"false", "", "false", "", "", "false", "false", "true"}, flags)
		assert.Equal(t, 6, summary.NonMissing)
		assert.Equal(t, 1, summary.NonNumeric)
	})

	t.Run("fewer than four values is not applicable", func(t *testing.T) {
		tbl := newTestTable(t, []string{"v"},
			[]string{"1"},
			[]string{"2"},
			[]string{"900"},
		)

		summary, err := flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)
		assert.False(t, summary.Applicable)
		assert.Equal(t, 0, summary.Flagged)

		flags, err := tbl.Column("v" + OutlierFlagSuffix)
		require.NoError(t, err)
		assert.Equal(t, []string{"false", "false", "false"}, flags)
	})

	t.Run("zero iqr is not applicable", func(t *testing.T) {
		tbl := newTestTable(t, []string{"v"},
			[]string{"5"},
			[]string{"5"},
			[]string{"5"},
			[]string{"5"},
			[]string{"999"},
		)

		summary, err := flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)
		assert.False(t, summary.Applicable)
		assert.Equal(t, 0, summary.Flagged)
	})

	t.Run("never alters underlying values", func(t *testing.T) {
		tbl := newTestTable(t, []string{"v"},
			[]string{"1"},
			[]string{"2"},
			[]string{"3"},
			[]string{"4"},
			[]string{"100"},
		)
		before, err := tbl.Column("v")
		require.NoError(t, err)

		_, err = flagOutliers(tbl, 0, 1.5, sentinels)
		require.NoError(t, err)

		after, err := tbl.Column("v")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
