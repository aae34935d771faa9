package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehrqa/internal/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"id", "age", "age_iqr_outlier"})
	require.NoError(t, err)
	require.NoError(t, tbl.AppendRow([]string{"e1", "45", "false"}))
	require.NoError(t, tbl.AppendRow([]string{"e2", "89", "true"}))
	return tbl
}

func TestWriteTable(t *testing.T) {
	t.Run("all columns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "cleaned.csv")
		w := NewCSVWriter(nil)
		require.NoError(t, w.WriteTable(path, testTable(t), WriteOptions{}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "id,age,age_iqr_outlier\ne1,45,false\ne2,89,true\n", string(data))
	})

	t.Run("column subset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flags.csv")
		w := NewCSVWriter(nil)
		require.NoError(t, w.WriteTable(path, testTable(t), WriteOptions{
			Columns: []string{"age_iqr_outlier"},
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "age_iqr_outlier\nfalse\ntrue\n", string(data))
	})

	t.Run("bom prefix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bom.csv")
		w := NewCSVWriter(nil)
		require.NoError(t, w.WriteTable(path, testTable(t), WriteOptions{BOMPrefix: true}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	})

	t.Run("unknown column", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		w := NewCSVWriter(nil)
		err := w.WriteTable(path, testTable(t), WriteOptions{Columns: []string{"nope"}})
		assert.Error(t, err)
	})
}
