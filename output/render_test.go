package output

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

func testGrid(t *testing.T, values []float64) *grid.Grid {
	t.Helper()
	g, err := grid.FromData(2, 2, [6]float64{0, 10, 0, 20, 0, -10}, 32722, values)
	require.NoError(t, err)
	return g
}

func TestRenderPNG(t *testing.T) {
	g := testGrid(t, []float64{-1, 0, 1, math.NaN()})
	path := filepath.Join(t.TempDir(), "maps", "ndvi.png")

	require.NoError(t, RenderPNG(g, path, VegetationRamp, -1, 1))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	// Valid cells are opaque, nodata stays transparent.
	_, _, _, a := img.At(0, 0).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = img.At(1, 1).RGBA()
	assert.Zero(t, a)
}

func TestRenderPNGInvalidRange(t *testing.T) {
	g := testGrid(t, []float64{0, 0, 0, 0})
	err := RenderPNG(g, filepath.Join(t.TempDir(), "x.png"), VegetationRamp, 1, 1)
	require.Error(t, err)
}

func TestRenderComparison(t *testing.T) {
	a := testGrid(t, []float64{0.1, 0.2, 0.3, 0.4})
	b := testGrid(t, []float64{0.4, 0.3, 0.2, 0.1})
	path := filepath.Join(t.TempDir(), "compare.png")

	require.NoError(t, RenderComparison(a, b, "2023", "2024", path, VegetationRamp, -1, 1))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 2*2+comparisonGap, img.Bounds().Dx())
	assert.Equal(t, 2+labelHeight, img.Bounds().Dy())
}

func TestRenderComparisonShapeMismatch(t *testing.T) {
	a := testGrid(t, []float64{1, 2, 3, 4})
	b, err := grid.New(3, 2, [6]float64{0, 10, 0, 20, 0, -10}, 32722)
	require.NoError(t, err)

	err = RenderComparison(a, b, "a", "b", filepath.Join(t.TempDir(), "x.png"), VegetationRamp, 0, 1)
	require.Error(t, err)
}

func TestRamps(t *testing.T) {
	r, g, b := VegetationRamp(0)
	rr, gg, bb := VegetationRamp(1)
	assert.NotEqual(t, [3]float64{r, g, b}, [3]float64{rr, gg, bb})

	// Diverging ramp is near-white at the center.
	r, g, b = DivergingRamp(0.5)
	assert.InDelta(t, 1, r, 1e-9)
	assert.InDelta(t, 1, g, 1e-9)
	assert.InDelta(t, 1, b, 1e-9)

	// Out-of-range values clamp instead of wrapping.
	r1, g1, b1 := DivergingRamp(-5)
	r2, g2, b2 := DivergingRamp(0)
	assert.Equal(t, [3]float64{r2, g2, b2}, [3]float64{r1, g1, b1})
}
