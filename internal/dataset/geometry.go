package dataset

import (
	"fmt"
	"strconv"
)

// ExtractGeometry splits the two coordinate columns out of a loaded table.
// It returns the N×2 geometry and a new table holding the remaining columns,
// row order preserved. Every row must have parseable coordinates.
func ExtractGeometry(t *Table, xColumn, yColumn string) ([][2]float64, *Table, error) {
	if !t.HasColumn(xColumn) {
		return nil, nil, fmt.Errorf("dataset: unknown x column %q", xColumn)
	}
	if !t.HasColumn(yColumn) {
		return nil, nil, fmt.Errorf("dataset: unknown y column %q", yColumn)
	}

	var rest []string
	for _, col := range t.Columns() {
		if col != xColumn && col != yColumn {
			rest = append(rest, col)
		}
	}

	geometry := make([][2]float64, 0, t.NumRows())
	meta := New(rest...)
	for i := 0; i < t.NumRows(); i++ {
		x, err := coordAt(t, i, xColumn)
		if err != nil {
			return nil, nil, err
		}
		y, err := coordAt(t, i, yColumn)
		if err != nil {
			return nil, nil, err
		}
		geometry = append(geometry, [2]float64{x, y})

		cells := make([]any, len(rest))
		for j, col := range rest {
			cells[j], _ = t.Cell(i, col)
		}
		if err := meta.AppendRow(cells...); err != nil {
			return nil, nil, err
		}
	}
	return geometry, meta, nil
}

func coordAt(t *Table, row int, column string) (float64, error) {
	cell, _ := t.Cell(row, column)
	switch v := cell.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("dataset: row %d column %q is not a coordinate: %q", row, column, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("dataset: row %d column %q is not a coordinate", row, column)
	}
}
