package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "title,x,y,score\nAlpha,1.5,2,0.5\nBeta,3,4,\n")

	tbl, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "x", "y", "score"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())

	title, _ := tbl.Cell(0, "title")
	assert.Equal(t, "Alpha", title)

	x, _ := tbl.Cell(0, "x")
	assert.Equal(t, 1.5, x)

	// Empty cells become nil so the panel skips them.
	score, ok := tbl.Cell(1, "score")
	require.True(t, ok)
	assert.Nil(t, score)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "title,x,y\n")

	tbl, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"title", "x", "y"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alpha", 1.5, 2.0}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Beta", 3.0, 4.0}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "x", "y"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())

	title, _ := tbl.Cell(1, "title")
	assert.Equal(t, "Beta", title)

	y, _ := tbl.Cell(1, "y")
	assert.Equal(t, 4.0, y)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).Read()
	require.Error(t, err)
}

func TestCoerceCell(t *testing.T) {
	assert.Nil(t, coerceCell(""))
	assert.Equal(t, 1.5, coerceCell("1.5"))
	assert.Equal(t, true, coerceCell("true"))
	assert.Equal(t, false, coerceCell("FALSE"))
	assert.Equal(t, "hello", coerceCell("hello"))
	assert.Equal(t, "-1a", coerceCell("-1a"))
}
