package detail

import (
	"fmt"

	"github.com/pointmap/pointmap/internal/dataset"
)

// Null-like sentinels: label values that mean "unclustered" and must never
// appear as display data.
var nullLikeSentinels = []string{"", "-1", "None", "null"}

// IsNullLike reports whether a label value denotes an unclustered point.
func IsNullLike(label string) bool {
	for _, s := range nullLikeSentinels {
		if label == s {
			return true
		}
	}
	return false
}

// BuildInput carries the Builder inputs. Metadata, HoverText and LabelLayers
// are all optional; NumPoints comes from the geometry and is required.
type BuildInput struct {
	// Metadata has one row per point with arbitrary named columns.
	Metadata *dataset.Table
	// HoverText is the short per-point hover string. Derived from the first
	// metadata column when absent.
	HoverText []string
	// LabelLayers holds one label per point per hierarchy level. Individual
	// layers may be nil or shorter than NumPoints.
	LabelLayers [][]string
	// NumPoints is the geometry's point count.
	NumPoints int
}

// BuildResult is the Builder output: the point-indexed detail table and the
// resolved hover text.
type BuildResult struct {
	Details   *Table
	HoverText []string
}

// Build shapes the tabular metadata and label layers into one point-indexed
// detail table. It runs once at plot-construction time; the result is
// immutable afterwards.
//
// Output order is insertion order of the merge (metadata order, then bare
// index-only records), not index order; consumers look up by index.
// Length disagreements between inputs are tolerated via per-index existence
// checks: short label layers contribute nothing past their end, and metadata
// rows beyond NumPoints still produce records.
func Build(in BuildInput) (*BuildResult, error) {
	if in.NumPoints < 0 {
		return nil, fmt.Errorf("detail: point count must be non-negative, got %d", in.NumPoints)
	}

	hover := in.HoverText
	if hover == nil && in.Metadata != nil && len(in.Metadata.Columns()) > 0 {
		first := in.Metadata.Columns()[0]
		hover = make([]string, in.Metadata.NumRows())
		for i := range hover {
			cell, _ := in.Metadata.Cell(i, first)
			hover[i] = FromAny(cell).Text()
		}
	}

	table := NewTable()

	if in.Metadata != nil {
		for i := 0; i < in.Metadata.NumRows(); i++ {
			table.Add(recordFromRow(in.Metadata, i))
		}
	}

	if len(in.LabelLayers) > 0 {
		for i := 0; i < in.NumPoints; i++ {
			rec, ok := table.Lookup(i)
			if !ok {
				rec = NewRecord(i)
				table.Add(rec)
			}

			var info ClusterInfo
			for k, layer := range in.LabelLayers {
				if layer == nil || i >= len(layer) {
					continue
				}
				if IsNullLike(layer[i]) {
					continue
				}
				info = append(info, ClusterLevel{
					Level: fmt.Sprintf("Cluster Level %d", k+1),
					Label: layer[i],
				})
			}
			if len(info) > 0 {
				rec.Cluster = info
			}
		}
	}

	return &BuildResult{Details: table, HoverText: hover}, nil
}

// recordFromRow copies every column verbatim. A literal "index" column with a
// numeric value becomes the record's index; the row position is only the
// fallback, never an override.
func recordFromRow(meta *dataset.Table, row int) *Record {
	rec := NewRecord(row)
	for _, col := range meta.Columns() {
		cell, ok := meta.Cell(row, col)
		if !ok {
			continue
		}
		v := FromAny(cell)
		if col == indexKey {
			if n, isNum := v.AsNumber(); isNum {
				rec.Index = int(n)
				continue
			}
		}
		rec.Set(col, v)
	}
	return rec
}
