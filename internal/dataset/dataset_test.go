package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

func testSpec() grid.Spec {
	return grid.Spec{Width: 2, Height: 2, GT: [6]float64{0, 10, 0, 20, 0, -10}, EPSG: 32722}
}

func fill(t *testing.T, spec grid.Spec, values []float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromData(spec.Width, spec.Height, spec.GT, spec.EPSG, values)
	require.NoError(t, err)
	return g
}

func TestAddAndVar(t *testing.T) {
	d := New(testSpec())
	g := fill(t, testSpec(), []float64{1, 2, 3, 4})

	require.NoError(t, d.Add("ndvi_a", g))
	got, err := d.Var("ndvi_a")
	require.NoError(t, err)
	assert.Equal(t, g, got)
	assert.Equal(t, []string{"ndvi_a"}, d.Names())

	require.Error(t, d.Add("ndvi_a", g), "duplicate names are rejected")
	require.Error(t, d.Add("", g))

	_, err = d.Var("missing")
	require.Error(t, err)
}

func TestAddRejectsMismatchedSpec(t *testing.T) {
	d := New(testSpec())
	other, err := grid.New(3, 2, [6]float64{0, 10, 0, 20, 0, -10}, 32722)
	require.NoError(t, err)

	err = d.Add("bad", other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestDiffAndStats(t *testing.T) {
	d := New(testSpec())
	require.NoError(t, d.Add("a", fill(t, testSpec(), []float64{0.5, 0.4, 0.2, math.NaN()})))
	require.NoError(t, d.Add("b", fill(t, testSpec(), []float64{0.2, 0.4, 0.5, 0.1})))

	diff, err := d.Diff("a", "b", "change")
	require.NoError(t, err)

	assert.InDelta(t, 0.3, diff.At(0, 0), 1e-9)
	assert.InDelta(t, 0.0, diff.At(1, 0), 1e-9)
	assert.InDelta(t, -0.3, diff.At(0, 1), 1e-9)
	assert.True(t, math.IsNaN(diff.At(1, 1)))

	stats, err := d.Stats("change")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Valid)
	assert.InDelta(t, 0.75, stats.Coverage, 1e-9)
	assert.InDelta(t, 0.0, stats.Mean, 1e-9)
	assert.Equal(t, 1, stats.Increased)
	assert.Equal(t, 1, stats.Decreased)

	_, err = d.Diff("a", "missing", "x")
	require.Error(t, err)
}

func TestRowsSkipNoData(t *testing.T) {
	d := New(testSpec())
	require.NoError(t, d.Add("ndvi", fill(t, testSpec(), []float64{0.5, math.NaN(), 0.2, 0.1})))

	rows, err := d.Rows(nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 0, rows[0].X)
	assert.Equal(t, 0, rows[0].Y)
	assert.Equal(t, "ndvi", rows[0].Variable)
	assert.InDelta(t, 0.5, rows[0].Value, 1e-9)
	// Identity transform keeps map coordinates: center of cell (0,0).
	assert.InDelta(t, 5.0, rows[0].Longitude, 1e-9)
	assert.InDelta(t, 15.0, rows[0].Latitude, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	d := New(testSpec())
	require.NoError(t, d.Add("ndvi", fill(t, testSpec(), []float64{0.5, 0.25, 0.2, 0.1})))

	path := filepath.Join(t.TempDir(), "result", "pixels.csv")
	require.NoError(t, d.WriteCSV(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "x,y,longitude,latitude,variable,value", lines[0])
	assert.Contains(t, lines[1], "ndvi")
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	d := New(testSpec())
	empty, err := testSpec().NewGrid()
	require.NoError(t, err)
	require.NoError(t, d.Add("ndvi", empty))

	err = d.WriteCSV(filepath.Join(t.TempDir(), "pixels.csv"), nil)
	require.Error(t, err)
}
