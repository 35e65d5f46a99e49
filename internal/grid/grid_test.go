package grid

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func northUpGT(originX, originY, res float64) [6]float64 {
	return [6]float64{originX, res, 0, originY, 0, -res}
}

// rampGrid fills a grid with a linear function of cell-center coordinates so
// bilinear sampling can be checked exactly.
func rampGrid(t *testing.T, width, height int, gt [6]float64, epsg int) *Grid {
	t.Helper()
	g, err := New(width, height, gt, epsg)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx, gy := g.CellCenter(x, y)
			g.Set(x, y, 2*gx+3*gy)
		}
	}
	return g
}

func TestNewRejectsRotatedTransform(t *testing.T) {
	gt := [6]float64{0, 1, 0.1, 10, 0, -1}
	_, err := New(4, 4, gt, 32722)
	require.Error(t, err)
}

func TestPixelGeoRoundTrip(t *testing.T) {
	g, err := New(10, 8, northUpGT(500000, 8000000, 10), 32722)
	require.NoError(t, err)

	gx, gy := g.CellCenter(3, 5)
	px, py := g.GeoToPixel(gx, gy)
	assert.InDelta(t, 3.5, px, 1e-9)
	assert.InDelta(t, 5.5, py, 1e-9)

	b := g.Bound()
	assert.Equal(t, orb.Point{500000, 8000000 - 80}, b.Min)
	assert.Equal(t, orb.Point{500000 + 100, 8000000}, b.Max)
}

func TestSpecFromBound(t *testing.T) {
	b := orb.Bound{Min: orb.Point{100, 200}, Max: orb.Point{150, 230}}
	spec, err := SpecFromBound(b, 10, 32722)
	require.NoError(t, err)

	assert.Equal(t, 5, spec.Width)
	assert.Equal(t, 3, spec.Height)
	assert.Equal(t, [6]float64{100, 10, 0, 230, 0, -10}, spec.GT)

	// Partial cells round up so the bound stays covered.
	spec, err = SpecFromBound(b, 7, 32722)
	require.NoError(t, err)
	assert.Equal(t, 8, spec.Width)
	assert.Equal(t, 5, spec.Height)

	_, err = SpecFromBound(b, 0, 32722)
	require.Error(t, err)
	_, err = SpecFromBound(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 2}}, 10, 32722)
	require.Error(t, err)
}

func TestCompareDetectsMisalignment(t *testing.T) {
	a, err := New(4, 4, northUpGT(0, 40, 10), 32722)
	require.NoError(t, err)
	b, err := New(4, 4, northUpGT(0, 40, 10), 32722)
	require.NoError(t, err)

	assert.True(t, Compare(a, b).Aligned())
	assert.Equal(t, "aligned", Compare(a, b).String())

	shifted, err := New(4, 4, northUpGT(5, 40, 10), 32722)
	require.NoError(t, err)
	al := Compare(a, shifted)
	assert.False(t, al.Aligned())
	assert.True(t, al.SameCRS)
	assert.False(t, al.SameTransform)
	assert.True(t, al.SameShape)

	otherCRS, err := New(4, 4, northUpGT(0, 40, 10), 4326)
	require.NoError(t, err)
	assert.False(t, Compare(a, otherCRS).Aligned())

	otherShape, err := New(5, 4, northUpGT(0, 40, 10), 32722)
	require.NoError(t, err)
	al = Compare(a, otherShape)
	assert.False(t, al.SameShape)
	assert.Contains(t, al.String(), "shape differs")
}

func TestRegridBilinearReproducesLinearField(t *testing.T) {
	src := rampGrid(t, 4, 4, northUpGT(0, 4, 1), 32722)

	spec, err := SpecFromBound(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{3, 3}}, 0.5, 32722)
	require.NoError(t, err)

	out, err := Regrid(src, spec, Identity, Bilinear)
	require.NoError(t, err)

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			gx, gy := out.CellCenter(x, y)
			assert.InDelta(t, 2*gx+3*gy, out.At(x, y), 1e-9, "cell (%d,%d)", x, y)
		}
	}
}

func TestRegridOutOfBoundsIsNoData(t *testing.T) {
	src := rampGrid(t, 4, 4, northUpGT(0, 4, 1), 32722)

	// Target extends well past the source grid on every side.
	spec, err := SpecFromBound(orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{14, 14}}, 4, 32722)
	require.NoError(t, err)

	out, err := Regrid(src, spec, Identity, Bilinear)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.At(0, 0)))
	assert.True(t, math.IsNaN(out.At(out.Width-1, out.Height-1)))
}

func TestRegridBilinearPropagatesNoData(t *testing.T) {
	src := rampGrid(t, 4, 4, northUpGT(0, 4, 1), 32722)
	src.Set(1, 1, math.NaN())

	spec := Spec{Width: 4, Height: 4, GT: northUpGT(0, 4, 1), EPSG: 32722}
	out, err := Regrid(src, spec, Identity, Bilinear)
	require.NoError(t, err)

	// Target centers land exactly on source centers, and (1,1) is nodata.
	assert.True(t, math.IsNaN(out.At(1, 1)))
	gx, gy := out.CellCenter(2, 2)
	assert.InDelta(t, 2*gx+3*gy, out.At(2, 2), 1e-9)
}

func TestRegridNearest(t *testing.T) {
	src, err := New(2, 2, northUpGT(0, 2, 1), 32722)
	require.NoError(t, err)
	src.Set(0, 0, 1)
	src.Set(1, 0, 2)
	src.Set(0, 1, 3)
	src.Set(1, 1, 4)

	spec := Spec{Width: 4, Height: 4, GT: northUpGT(0, 2, 0.5), EPSG: 32722}
	out, err := Regrid(src, spec, Identity, Nearest)
	require.NoError(t, err)

	// Nearest keeps the categorical values intact.
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 1.0, out.At(1, 1))
	assert.Equal(t, 2.0, out.At(3, 0))
	assert.Equal(t, 3.0, out.At(0, 3))
	assert.Equal(t, 4.0, out.At(3, 3))
}

func TestCoarsenMean(t *testing.T) {
	g, err := New(4, 4, northUpGT(0, 40, 10), 32722)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, float64(y*4+x))
		}
	}

	out, err := Coarsen(g, 2, MeanReducer)
	require.NoError(t, err)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 2, out.Height)
	assert.Equal(t, [6]float64{0, 20, 0, 40, 0, -20}, out.GT)
	assert.InDelta(t, (0.0+1+4+5)/4, out.At(0, 0), 1e-9)
	assert.InDelta(t, (10.0+11+14+15)/4, out.At(1, 1), 1e-9)
}

func TestCoarsenSkipsNoDataAndHandlesPartialBlocks(t *testing.T) {
	g, err := New(3, 3, northUpGT(0, 30, 10), 32722)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.Set(x, y, 1)
		}
	}
	g.Set(0, 0, math.NaN())

	out, err := Coarsen(g, 2, CountReducer)
	require.NoError(t, err)
	require.Equal(t, 2, out.Width)
	require.Equal(t, 2, out.Height)
	assert.Equal(t, 3.0, out.At(0, 0)) // one of four cells is nodata
	assert.Equal(t, 2.0, out.At(1, 0)) // partial block, 2x1 cells
	assert.Equal(t, 1.0, out.At(1, 1)) // partial block, 1x1 cell

	_, err = Coarsen(g, 0, MeanReducer)
	require.Error(t, err)
}

func TestCoarsenFactorOneCopies(t *testing.T) {
	g, err := New(2, 2, northUpGT(0, 20, 10), 32722)
	require.NoError(t, err)
	g.Set(0, 0, 7)

	out, err := Coarsen(g, 1, MeanReducer)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.At(0, 0))

	out.Set(0, 0, 9)
	assert.Equal(t, 7.0, g.At(0, 0), "coarsen must not share the source buffer")
}

func TestSummarize(t *testing.T) {
	g, err := New(2, 3, northUpGT(0, 30, 10), 32722)
	require.NoError(t, err)
	for i, v := range []float64{1, 2, 3, 4, 5, math.NaN()} {
		g.Data[i] = v
	}

	s := Summarize(g)
	assert.Equal(t, 5, s.Valid)
	assert.InDelta(t, 3, s.Mean, 1e-9)
	assert.InDelta(t, 1, s.Min, 1e-9)
	assert.InDelta(t, 5, s.Max, 1e-9)
	assert.InDelta(t, 3, s.Median, 1e-9)

	empty, err := New(2, 2, northUpGT(0, 20, 10), 32722)
	require.NoError(t, err)
	s = Summarize(empty)
	assert.Equal(t, 0, s.Valid)
	assert.True(t, math.IsNaN(s.Mean))
}
