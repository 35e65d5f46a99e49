package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Spec describes a target grid: shape plus georeferencing. Two grids with
// equal specs can be combined cell by cell.
type Spec struct {
	Width  int
	Height int
	GT     [6]float64
	EPSG   int
}

// SpecFromBound builds a north-up grid spec covering the bound at the given
// cell size. The grid origin sits at the bound's top-left corner; width and
// height are rounded up so the bound is fully covered.
func SpecFromBound(b orb.Bound, resolution float64, epsg int) (Spec, error) {
	if resolution <= 0 {
		return Spec{}, fmt.Errorf("resolution must be positive, got %f", resolution)
	}
	if b.Min[0] >= b.Max[0] || b.Min[1] >= b.Max[1] {
		return Spec{}, fmt.Errorf("degenerate bound %v", b)
	}
	width := int(math.Ceil((b.Max[0] - b.Min[0]) / resolution))
	height := int(math.Ceil((b.Max[1] - b.Min[1]) / resolution))
	return Spec{
		Width:  width,
		Height: height,
		GT:     [6]float64{b.Min[0], resolution, 0, b.Max[1], 0, -resolution},
		EPSG:   epsg,
	}, nil
}

func (s Spec) NewGrid() (*Grid, error) {
	return New(s.Width, s.Height, s.GT, s.EPSG)
}

// CellCenter returns the map coordinates of the center of pixel (x, y).
func (s Spec) CellCenter(x, y int) (float64, float64) {
	gx := s.GT[0] + s.GT[1]*(float64(x)+0.5)
	gy := s.GT[3] + s.GT[5]*(float64(y)+0.5)
	return gx, gy
}

func (s Spec) Equal(other Spec) bool {
	return s.Width == other.Width && s.Height == other.Height &&
		s.EPSG == other.EPSG && sameTransform(s.GT, other.GT)
}

func (s Spec) String() string {
	return fmt.Sprintf("%dx%d @ %.6g (EPSG:%d)", s.Width, s.Height, s.GT[1], s.EPSG)
}
