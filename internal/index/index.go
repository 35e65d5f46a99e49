// Package index computes per-pixel spectral indexes from band grids.
package index

import (
	"fmt"
	"math"

	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

// NormalizedDifference computes (a-b)/(a+b) per pixel. Cells where the
// denominator is zero, or where either input is nodata, come out as NaN. Both
// grids must be aligned; the result carries their georeferencing.
func NormalizedDifference(a, b *grid.Grid) (*grid.Grid, error) {
	if al := grid.Compare(a, b); !al.Aligned() {
		return nil, fmt.Errorf("cannot combine bands: %s", al)
	}

	out, err := grid.New(a.Width, a.Height, a.GT, a.EPSG)
	if err != nil {
		return nil, err
	}
	for i := range a.Data {
		va, vb := a.Data[i], b.Data[i]
		denominator := va + vb
		if denominator == 0 || math.IsNaN(denominator) {
			continue
		}
		out.Data[i] = (va - vb) / denominator
	}
	return out, nil
}

// NDVI is the normalized difference of the near-infrared and red bands.
func NDVI(nir, red *grid.Grid) (*grid.Grid, error) {
	return NormalizedDifference(nir, red)
}

// NDWI is the normalized difference of the green and near-infrared bands
// (McFeeters), highlighting open water.
func NDWI(green, nir *grid.Grid) (*grid.Grid, error) {
	return NormalizedDifference(green, nir)
}

// EVI computes the enhanced vegetation index from the near-infrared, red and
// blue bands using the MODIS coefficients.
func EVI(nir, red, blue *grid.Grid) (*grid.Grid, error) {
	if al := grid.Compare(nir, red); !al.Aligned() {
		return nil, fmt.Errorf("cannot combine bands: %s", al)
	}
	if al := grid.Compare(nir, blue); !al.Aligned() {
		return nil, fmt.Errorf("cannot combine bands: %s", al)
	}

	out, err := grid.New(nir.Width, nir.Height, nir.GT, nir.EPSG)
	if err != nil {
		return nil, err
	}
	for i := range nir.Data {
		n, r, b := nir.Data[i], red.Data[i], blue.Data[i]
		denominator := n + 6*r - 7.5*b + 1
		if denominator == 0 || math.IsNaN(denominator) {
			continue
		}
		out.Data[i] = 2.5 * (n - r) / denominator
	}
	return out, nil
}
