package grid

import (
	"fmt"
	"math"

	"github.com/schollz/progressbar/v3"
)

// CoordTransformer converts map coordinates in place between two coordinate
// reference systems. Implementations wrap a projection library; Identity
// serves grids that already share a CRS.
type CoordTransformer interface {
	Transform(xs, ys []float64) error
}

type identity struct{}

func (identity) Transform(xs, ys []float64) error { return nil }

// Identity is a no-op CoordTransformer.
var Identity CoordTransformer = identity{}

// Method selects how source cells are sampled during regridding.
type Method int

const (
	// Bilinear interpolates from the four surrounding source cells. Use for
	// continuous variables.
	Bilinear Method = iota
	// Nearest picks the closest source cell. Use for categorical bands.
	Nearest
)

// Regrid resamples src onto the target spec. Each target cell center is
// converted through tr from the target CRS into the source CRS and sampled
// from src. Cells falling outside src, or touching only nodata, come out as
// NaN.
func Regrid(src *Grid, spec Spec, tr CoordTransformer, method Method) (*Grid, error) {
	if tr == nil {
		tr = Identity
	}

	out, err := spec.NewGrid()
	if err != nil {
		return nil, err
	}

	// Resolve all target cell centers in one transformer call; projection
	// libraries are much faster on batches.
	xs := make([]float64, spec.Width*spec.Height)
	ys := make([]float64, spec.Width*spec.Height)
	for y := 0; y < spec.Height; y++ {
		for x := 0; x < spec.Width; x++ {
			i := y*spec.Width + x
			xs[i], ys[i] = spec.CellCenter(x, y)
		}
	}
	if err := tr.Transform(xs, ys); err != nil {
		return nil, fmt.Errorf("failed to transform target cell centers: %w", err)
	}

	progressBar := progressbar.Default(int64(spec.Height), "Regridding")
	for y := 0; y < spec.Height; y++ {
		for x := 0; x < spec.Width; x++ {
			i := y*spec.Width + x
			px, py := src.GeoToPixel(xs[i], ys[i])
			switch method {
			case Nearest:
				out.Data[i] = sampleNearest(src, px, py)
			default:
				out.Data[i] = sampleBilinear(src, px, py)
			}
		}
		progressBar.Add(1)
	}
	progressBar.Finish()

	return out, nil
}

func sampleNearest(src *Grid, px, py float64) float64 {
	x := int(math.Floor(px))
	y := int(math.Floor(py))
	if !src.Contains(x, y) {
		return math.NaN()
	}
	return src.At(x, y)
}

func sampleBilinear(src *Grid, px, py float64) float64 {
	// Shift to cell-center space so that integer coordinates land on centers.
	fx := px - 0.5
	fy := py - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	if x0 < 0 || y0 < 0 || x1 >= src.Width || y1 >= src.Height {
		return math.NaN()
	}

	wx := fx - float64(x0)
	wy := fy - float64(y0)

	v00 := src.At(x0, y0)
	v10 := src.At(x1, y0)
	v01 := src.At(x0, y1)
	v11 := src.At(x1, y1)
	if math.IsNaN(v00) || math.IsNaN(v10) || math.IsNaN(v01) || math.IsNaN(v11) {
		return math.NaN()
	}

	top := v00*(1-wx) + v10*wx
	bottom := v01*(1-wx) + v11*wx
	return top*(1-wy) + bottom*wy
}
