package qa

import (
	"fmt"
	"strings"
)

// SchemaError reports role bindings that name columns absent from the
// input table. It is fatal: the pipeline raises it before any other
// processing runs.
type SchemaError struct {
	Columns []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Columns) == 1 {
		return fmt.Sprintf("bound column does not exist in table: %s", e.Columns[0])
	}
	return fmt.Sprintf("bound columns do not exist in table: %s", strings.Join(e.Columns, ", "))
}
