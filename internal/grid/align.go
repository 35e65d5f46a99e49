package grid

import (
	"fmt"
	"math"
	"strings"
)

const gtEpsilon = 1e-9

// Alignment reports how two grids relate. Grids are aligned when they share
// CRS, geotransform and shape, so their cells can be combined directly.
type Alignment struct {
	SameCRS       bool
	SameTransform bool
	SameShape     bool
}

func (a Alignment) Aligned() bool {
	return a.SameCRS && a.SameTransform && a.SameShape
}

func (a Alignment) String() string {
	if a.Aligned() {
		return "aligned"
	}
	var issues []string
	if !a.SameCRS {
		issues = append(issues, "CRS differs")
	}
	if !a.SameTransform {
		issues = append(issues, "geotransform differs")
	}
	if !a.SameShape {
		issues = append(issues, "shape differs")
	}
	return fmt.Sprintf("misaligned: %s", strings.Join(issues, ", "))
}

// Compare detects grid misalignment between two rasters.
func Compare(a, b *Grid) Alignment {
	return Alignment{
		SameCRS:       a.EPSG == b.EPSG,
		SameTransform: sameTransform(a.GT, b.GT),
		SameShape:     a.Width == b.Width && a.Height == b.Height,
	}
}

func sameTransform(a, b [6]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > gtEpsilon {
			return false
		}
	}
	return true
}
