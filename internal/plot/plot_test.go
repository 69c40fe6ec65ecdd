package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmap/pointmap/internal/dataset"
)

func samplePlot(t *testing.T, cfg Config) *Plot {
	t.Helper()
	meta := dataset.New("title", "url")
	require.NoError(t, meta.AppendRow("Alpha", "http://x.com"))
	require.NoError(t, meta.AppendRow("Beta", "http://y.com"))

	p, err := New([][2]float64{{1, 2}, {3, 4}}, Options{
		Metadata:    meta,
		LabelLayers: [][]string{{"Group A", "-1"}},
		Config:      cfg,
	})
	require.NoError(t, err)
	return p
}

func TestNewRequiresGeometry(t *testing.T) {
	_, err := New(nil, Options{})
	require.ErrorIs(t, err, ErrNoGeometry)
}

func TestNewEmptyGeometryIsValid(t *testing.T) {
	p, err := New([][2]float64{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.NumPoints())

	html, err := p.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "showPointDetails")
}

func TestNewAppliesDefaults(t *testing.T) {
	p, err := New([][2]float64{{0, 0}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Interactive Data Map", p.Title())
}

func TestHTMLEmbedsEverything(t *testing.T) {
	p := samplePlot(t, Config{Title: "Papers"})
	html, err := p.HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Papers</title>")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, `id="detail-panel"`)
	assert.Contains(t, html, "function showPointDetails")
	assert.Contains(t, html, `"index":0`)
	assert.Contains(t, html, `"title":"Alpha"`)
	assert.Contains(t, html, `"Cluster Level 1":"Group A"`)
	assert.Contains(t, html, "Unlabelled")
	assert.Contains(t, html, "Alpha") // hover text
}

func TestHTMLDerivesHoverTextFromMetadata(t *testing.T) {
	p := samplePlot(t, Config{})
	assert.Equal(t, []string{"Alpha", "Beta"}, p.HoverText())
}

func TestHTMLThemes(t *testing.T) {
	dark, err := samplePlot(t, Config{}).HTML()
	require.NoError(t, err)
	assert.Contains(t, dark, "#1a1a2e")

	light, err := samplePlot(t, Config{Theme: "light"}).HTML()
	require.NoError(t, err)
	assert.Contains(t, light, "#f5f7fa")
}

func TestSaveWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "map.html")
	require.NoError(t, samplePlot(t, Config{}).Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestBuildSeriesGroupsByFirstLayer(t *testing.T) {
	p := samplePlot(t, Config{})
	series := p.buildSeries()

	require.Len(t, series, 2)
	assert.Equal(t, "Group A", series[0].Name)
	assert.Equal(t, "Unlabelled", series[1].Name)
	require.Len(t, series[0].Points, 1)
	assert.Equal(t, [3]float64{1, 2, 0}, series[0].Points[0])
}

func TestBuildSeriesWithoutLayers(t *testing.T) {
	p, err := New([][2]float64{{0, 0}, {1, 1}}, Options{})
	require.NoError(t, err)

	series := p.buildSeries()
	require.Len(t, series, 1)
	assert.Equal(t, "Unlabelled", series[0].Name)
	assert.Len(t, series[0].Points, 2)
}

func TestSnapshotDOT(t *testing.T) {
	dot := samplePlot(t, Config{Title: "Papers"}).snapshotDOT()

	assert.Contains(t, dot, "graph DataMap {")
	assert.Contains(t, dot, "layout=neato;")
	assert.Contains(t, dot, "node [shape=point")
	assert.Contains(t, dot, `p0 [pos="1,2!"`)
	assert.Contains(t, dot, `p1 [pos="3,4!"`)
	assert.Contains(t, dot, `label="Papers";`)
}
