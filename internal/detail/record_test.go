package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalShape(t *testing.T) {
	rec := NewRecord(3)
	rec.Set("title", String("Foo"))
	rec.Set("url", String("http://x.com"))
	rec.Set("tags", Array(String("a"), String("b")))
	rec.Cluster = ClusterInfo{{Level: "Cluster Level 1", Label: "X"}}

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"index":3,"title":"Foo","url":"http://x.com","tags":["a","b"],"_cluster_info":{"Cluster Level 1":"X"}}`,
		string(data))
}

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := NewRecord(7)
	rec.Set("title", String("Foo"))
	rec.Set("score", Number(0.5))
	rec.Set("nested", Object(Member{Key: "a", Value: Number(1)}))
	rec.Cluster = ClusterInfo{
		{Level: "Cluster Level 1", Label: "Alpha"},
		{Level: "Cluster Level 2", Label: "Beta"},
	}

	data, err := rec.MarshalJSON()
	require.NoError(t, err)

	var parsed Record
	require.NoError(t, parsed.UnmarshalJSON(data))
	assert.Equal(t, *rec, parsed)
}

func TestRecordSetReplacesInPlace(t *testing.T) {
	rec := NewRecord(0)
	rec.Set("a", Number(1))
	rec.Set("b", Number(2))
	rec.Set("a", Number(3))

	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "a", rec.Fields[0].Name)
	assert.Equal(t, Number(3), rec.Fields[0].Value)
}

func TestTableLookupAndOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Add(NewRecord(5))
	tbl.Add(NewRecord(2))

	rec, ok := tbl.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, 5, rec.Index)

	_, ok = tbl.Lookup(0)
	assert.False(t, ok)

	// Insertion order, not index order.
	records := tbl.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 5, records[0].Index)
	assert.Equal(t, 2, records[1].Index)
}

func TestTableDuplicateIndexKeepsPosition(t *testing.T) {
	tbl := NewTable()
	first := NewRecord(1)
	first.Set("v", String("old"))
	tbl.Add(first)
	tbl.Add(NewRecord(2))

	replacement := NewRecord(1)
	replacement.Set("v", String("new"))
	tbl.Add(replacement)

	require.Equal(t, 2, tbl.Len())
	rec, ok := tbl.Lookup(1)
	require.True(t, ok)
	v, _ := rec.Field("v")
	assert.Equal(t, String("new"), v)
	assert.Equal(t, 1, tbl.Records()[0].Index)
}

func TestTableEmptyMarshal(t *testing.T) {
	data, err := NewTable().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
