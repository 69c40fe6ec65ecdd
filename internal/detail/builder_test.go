package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmap/pointmap/internal/dataset"
)

func metadataTable(t *testing.T) *dataset.Table {
	t.Helper()
	meta := dataset.New("title", "score")
	require.NoError(t, meta.AppendRow("Alpha", 0.5))
	require.NoError(t, meta.AppendRow("Beta", 1.0))
	return meta
}

func TestBuildDerivesHoverTextFromFirstColumn(t *testing.T) {
	res, err := Build(BuildInput{Metadata: metadataTable(t), NumPoints: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, res.HoverText)
}

func TestBuildKeepsSuppliedHoverText(t *testing.T) {
	res, err := Build(BuildInput{
		Metadata:  metadataTable(t),
		HoverText: []string{"a", "b"},
		NumPoints: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.HoverText)
}

func TestBuildCopiesColumnsVerbatim(t *testing.T) {
	res, err := Build(BuildInput{Metadata: metadataTable(t), NumPoints: 2})
	require.NoError(t, err)
	require.Equal(t, 2, res.Details.Len())

	rec, ok := res.Details.Lookup(0)
	require.True(t, ok)
	title, _ := rec.Field("title")
	score, _ := rec.Field("score")
	assert.Equal(t, String("Alpha"), title)
	assert.Equal(t, Number(0.5), score)
}

func TestBuildIndexColumnIsNeverOverwritten(t *testing.T) {
	meta := dataset.New("index", "title")
	require.NoError(t, meta.AppendRow(5.0, "Alpha"))
	require.NoError(t, meta.AppendRow(9.0, "Beta"))

	res, err := Build(BuildInput{Metadata: meta, NumPoints: 2})
	require.NoError(t, err)

	rec, ok := res.Details.Lookup(5)
	require.True(t, ok)
	title, _ := rec.Field("title")
	assert.Equal(t, String("Alpha"), title)

	_, ok = res.Details.Lookup(9)
	assert.True(t, ok)
	_, ok = res.Details.Lookup(0)
	assert.False(t, ok)

	// The index is the join key, not a rendered field.
	_, ok = rec.Field("index")
	assert.False(t, ok)
}

func TestBuildFiltersNullLikeSentinels(t *testing.T) {
	res, err := Build(BuildInput{
		LabelLayers: [][]string{{"X", "-1", "Y"}},
		NumPoints:   3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Details.Len())

	rec0, _ := res.Details.Lookup(0)
	require.Len(t, rec0.Cluster, 1)
	assert.Equal(t, ClusterLevel{Level: "Cluster Level 1", Label: "X"}, rec0.Cluster[0])

	rec1, _ := res.Details.Lookup(1)
	assert.Empty(t, rec1.Cluster)

	rec2, _ := res.Details.Lookup(2)
	require.Len(t, rec2.Cluster, 1)
	assert.Equal(t, "Y", rec2.Cluster[0].Label)
}

func TestIsNullLike(t *testing.T) {
	for _, s := range []string{"", "-1", "None", "null"} {
		assert.True(t, IsNullLike(s), s)
	}
	assert.False(t, IsNullLike("0"))
	assert.False(t, IsNullLike("Cluster A"))
}

func TestBuildLevelNumberingCountsNilLayers(t *testing.T) {
	res, err := Build(BuildInput{
		LabelLayers: [][]string{{"X"}, nil, {"Z"}},
		NumPoints:   1,
	})
	require.NoError(t, err)

	rec, _ := res.Details.Lookup(0)
	require.Len(t, rec.Cluster, 2)
	assert.Equal(t, "Cluster Level 1", rec.Cluster[0].Level)
	assert.Equal(t, "Cluster Level 3", rec.Cluster[1].Level)
}

func TestBuildShortLayerContributesNothingPastItsEnd(t *testing.T) {
	res, err := Build(BuildInput{
		LabelLayers: [][]string{{"X"}},
		NumPoints:   3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Details.Len())

	rec1, ok := res.Details.Lookup(1)
	require.True(t, ok)
	assert.Empty(t, rec1.Cluster)
	assert.Empty(t, rec1.Fields)
}

func TestBuildMergesLabelsIntoMetadataRecords(t *testing.T) {
	res, err := Build(BuildInput{
		Metadata:    metadataTable(t),
		LabelLayers: [][]string{{"X", "-1"}},
		NumPoints:   2,
	})
	require.NoError(t, err)

	rec, _ := res.Details.Lookup(0)
	title, _ := rec.Field("title")
	assert.Equal(t, String("Alpha"), title)
	require.Len(t, rec.Cluster, 1)
	assert.Equal(t, "X", rec.Cluster[0].Label)
}

func TestBuildIsIdempotent(t *testing.T) {
	in := BuildInput{
		Metadata:    metadataTable(t),
		LabelLayers: [][]string{{"X", "Y"}},
		NumPoints:   2,
	}

	first, err := Build(in)
	require.NoError(t, err)
	second, err := Build(in)
	require.NoError(t, err)

	a, err := first.Details.MarshalJSON()
	require.NoError(t, err)
	b, err := second.Details.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuildRoundTripLosesNothing(t *testing.T) {
	res, err := Build(BuildInput{
		Metadata:    metadataTable(t),
		LabelLayers: [][]string{{"X", "-1"}},
		NumPoints:   2,
	})
	require.NoError(t, err)

	data, err := res.Details.MarshalJSON()
	require.NoError(t, err)

	var parsed Table
	require.NoError(t, parsed.UnmarshalJSON(data))
	require.Equal(t, res.Details.Len(), parsed.Len())

	for _, want := range res.Details.Records() {
		got, ok := parsed.Lookup(want.Index)
		require.True(t, ok, "index %d", want.Index)
		assert.Equal(t, *want, *got)
	}
}

func TestBuildNegativePointCountFails(t *testing.T) {
	_, err := Build(BuildInput{NumPoints: -1})
	require.Error(t, err)
}

func TestBuildZeroPointsIsEmpty(t *testing.T) {
	res, err := Build(BuildInput{NumPoints: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Details.Len())
	assert.Nil(t, res.HoverText)
}
