package table

import (
	"fmt"
	"strings"
)

// Table is an in-memory tabular dataset: an ordered set of named columns
// and rows of string-valued cells. A missing cell is stored as "".
// The zero value is not usable; construct with New.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given column names.
// Column names must be non-empty and unique after trimming.
func New(columns []string) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, name := range columns {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty column name at position %d", len(t.columns))
		}
		if _, exists := t.index[name]; exists {
			return nil, fmt.Errorf("duplicate column name: %s", name)
		}
		t.index[name] = len(t.columns)
		t.columns = append(t.columns, name)
	}
	return t, nil
}

// AppendRow adds a row to the table. Short rows are padded with missing
// cells; rows longer than the column set are rejected.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) > len(t.columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns the column names in order. The slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.columns) }

// ColumnIndex resolves a column name to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at (row, col). Panics on out-of-range indexes,
// matching slice semantics; callers hold indexes from ColumnIndex.
func (t *Table) Cell(row, col int) string {
	return t.rows[row][col]
}

// SetCell overwrites the value at (row, col).
func (t *Table) SetCell(row, col int, value string) {
	t.rows[row][col] = value
}

// Row returns a copy of the row at the given index.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// AddColumn appends a new column filled with the provided values, one per
// existing row. Used for annotation columns (censor flags, derived
// features, outlier flags); existing columns are never removed.
func (t *Table) AddColumn(name string, values []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty column name")
	}
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("column already exists: %s", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// Column returns a copy of all values in the named column.
func (t *Table) Column(name string) ([]string, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("no such column: %s", name)
	}
	out := make([]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.rows[i][col]
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: make([]string, len(t.columns)),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]string, len(t.rows)),
	}
	copy(c.columns, t.columns)
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, row := range t.rows {
		c.rows[i] = make([]string, len(row))
		copy(c.rows[i], row)
	}
	return c
}

// Equal reports whether two tables have identical columns and cells.
func (t *Table) Equal(o *Table) bool {
	if o == nil || len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i := range t.columns {
		if t.columns[i] != o.columns[i] {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.rows[i] {
			if t.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}
	return true
}
