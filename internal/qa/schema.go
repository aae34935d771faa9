package qa

import (
	"ehrqa/internal/table"
)

// resolveBindings validates every configured column against the table and
// returns typed column handles for the downstream stages. All missing
// columns are collected so one SchemaError names them together.
func resolveBindings(tbl *table.Table, opts Options) (bindings, error) {
	b := bindings{ageCol: -1, timeCol: -1}
	var missing []string

	resolve := func(name string) int {
		idx, ok := tbl.ColumnIndex(name)
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return idx
	}

	for _, name := range opts.IDColumns {
		b.idCols = append(b.idCols, resolve(name))
	}
	if opts.AgeColumn != "" {
		b.ageCol = resolve(opts.AgeColumn)
	}
	if opts.TimeColumn != "" {
		b.timeCol = resolve(opts.TimeColumn)
	}
	for _, name := range opts.OutlierColumns {
		b.outlierCols = append(b.outlierCols, resolve(name))
	}

	if len(missing) > 0 {
		return bindings{}, &SchemaError{Columns: missing}
	}
	return b, nil
}
