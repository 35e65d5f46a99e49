package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Grid is a single-variable raster on a regular, north-up grid. Values are
// float64 with NaN marking nodata. The geotransform follows the GDAL
// convention: origin x, pixel width, row rotation, origin y, column rotation,
// pixel height (negative for north-up rasters).
type Grid struct {
	Width  int
	Height int
	GT     [6]float64
	EPSG   int
	Data   []float64
}

func New(width, height int, gt [6]float64, epsg int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if gt[2] != 0 || gt[4] != 0 {
		return nil, fmt.Errorf("rotated geotransforms are not supported")
	}
	data := make([]float64, width*height)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Grid{Width: width, Height: height, GT: gt, EPSG: epsg, Data: data}, nil
}

// FromData wraps an existing row-major buffer. The buffer is not copied.
func FromData(width, height int, gt [6]float64, epsg int, data []float64) (*Grid, error) {
	if len(data) != width*height {
		return nil, fmt.Errorf("data length %d does not match grid size %dx%d", len(data), width, height)
	}
	if gt[2] != 0 || gt[4] != 0 {
		return nil, fmt.Errorf("rotated geotransforms are not supported")
	}
	return &Grid{Width: width, Height: height, GT: gt, EPSG: epsg, Data: data}, nil
}

func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.Width+x] = v
}

func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// PixelToGeo maps fractional pixel coordinates to map coordinates.
func (g *Grid) PixelToGeo(px, py float64) (float64, float64) {
	gx := g.GT[0] + g.GT[1]*px + g.GT[2]*py
	gy := g.GT[3] + g.GT[4]*px + g.GT[5]*py
	return gx, gy
}

// GeoToPixel is the inverse of PixelToGeo for north-up grids.
func (g *Grid) GeoToPixel(gx, gy float64) (float64, float64) {
	px := (gx - g.GT[0]) / g.GT[1]
	py := (gy - g.GT[3]) / g.GT[5]
	return px, py
}

// CellCenter returns the map coordinates of the center of pixel (x, y).
func (g *Grid) CellCenter(x, y int) (float64, float64) {
	return g.PixelToGeo(float64(x)+0.5, float64(y)+0.5)
}

// Bound returns the grid extent in map coordinates.
func (g *Grid) Bound() orb.Bound {
	x0, y0 := g.PixelToGeo(0, 0)
	x1, y1 := g.PixelToGeo(float64(g.Width), float64(g.Height))
	return orb.Bound{
		Min: orb.Point{math.Min(x0, x1), math.Min(y0, y1)},
		Max: orb.Point{math.Max(x0, x1), math.Max(y0, y1)},
	}
}

// Spec returns the grid's georeferencing without its data.
func (g *Grid) Spec() Spec {
	return Spec{Width: g.Width, Height: g.Height, GT: g.GT, EPSG: g.EPSG}
}

// ValidCount reports the number of cells that are not nodata.
func (g *Grid) ValidCount() int {
	count := 0
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}
