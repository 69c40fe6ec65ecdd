package detail

import (
	gojson "github.com/goccy/go-json"
)

// Table is the point-indexed detail lookup structure. Records keep insertion
// order (metadata order first, bare label-only records appended) and are
// addressed by point index, not position. The table is built once and is
// read-only afterwards.
type Table struct {
	records []*Record
	pos     map[int]int
}

// NewTable returns an empty detail table.
func NewTable() *Table {
	return &Table{pos: make(map[int]int)}
}

// Add inserts the record. A record with an already present index replaces the
// earlier one in place, keeping its original position.
func (t *Table) Add(r *Record) {
	if i, ok := t.pos[r.Index]; ok {
		t.records[i] = r
		return
	}
	t.records = append(t.records, r)
	t.pos[r.Index] = len(t.records) - 1
}

// Lookup returns the record whose index equals the given point index.
// Exact-match only; a miss is not an error.
func (t *Table) Lookup(index int) (*Record, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.pos[index]
	if !ok {
		return nil, false
	}
	return t.records[i], true
}

// Records returns the records in insertion order.
func (t *Table) Records() []*Record {
	return t.records
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// MarshalJSON emits the records as a JSON array in insertion order. This is
// the exact form embedded in the generated document.
func (t *Table) MarshalJSON() ([]byte, error) {
	if len(t.records) == 0 {
		return []byte("[]"), nil
	}
	return gojson.Marshal(t.records)
}

// UnmarshalJSON parses a record array and rebuilds the index lookup.
func (t *Table) UnmarshalJSON(data []byte) error {
	var records []*Record
	if err := gojson.Unmarshal(data, &records); err != nil {
		return err
	}
	parsed := NewTable()
	for _, r := range records {
		parsed.Add(r)
	}
	*t = *parsed
	return nil
}
