package dataset

import (
	"fmt"
)

// Table is an order-preserving tabular metadata source: named columns, one
// row per data point. Cells are loosely typed (string, float64, bool or nil);
// the detail builder converts them into tagged values.
type Table struct {
	columns []string
	rows    []map[string]any
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{columns: columns}
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	return t.columns
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// AppendRow appends one row. Cells are matched positionally to the columns.
func (t *Table) AppendRow(cells ...any) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("dataset: row has %d cells, table has %d columns", len(cells), len(t.columns))
	}
	row := make(map[string]any, len(cells))
	for i, col := range t.columns {
		row[col] = cells[i]
	}
	t.rows = append(t.rows, row)
	return nil
}

// Cell returns the value at the given row and column.
func (t *Table) Cell(row int, column string) (any, bool) {
	if t == nil || row < 0 || row >= len(t.rows) {
		return nil, false
	}
	v, ok := t.rows[row][column]
	return v, ok
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// StringColumn returns one column coerced to display strings, one entry per
// row. Nil cells become empty strings.
func (t *Table) StringColumn(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("dataset: unknown column %q", name)
	}
	out := make([]string, t.NumRows())
	for i := range out {
		v, _ := t.Cell(i, name)
		out[i] = CellString(v)
	}
	return out, nil
}

// CellString converts a loosely typed cell into its display string.
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return trimFloat(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}
