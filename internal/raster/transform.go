package raster

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

// Transformer converts coordinates between two EPSG systems through GDAL's
// projection engine. It implements grid.CoordTransformer.
type Transformer struct {
	src *godal.SpatialRef
	dst *godal.SpatialRef
	tr  *godal.Transform
}

// NewTransformer builds a coordinate transformer from srcEPSG to dstEPSG.
// When both codes match the transformer is a no-op. The caller must Close it.
func NewTransformer(srcEPSG, dstEPSG int) (*Transformer, error) {
	if srcEPSG == dstEPSG {
		return &Transformer{}, nil
	}

	src, err := godal.NewSpatialRefFromEPSG(srcEPSG)
	if err != nil {
		return nil, fmt.Errorf("unknown EPSG:%d: %w", srcEPSG, err)
	}
	dst, err := godal.NewSpatialRefFromEPSG(dstEPSG)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("unknown EPSG:%d: %w", dstEPSG, err)
	}
	tr, err := godal.NewTransform(src, dst)
	if err != nil {
		src.Close()
		dst.Close()
		return nil, fmt.Errorf("cannot transform EPSG:%d to EPSG:%d: %w", srcEPSG, dstEPSG, err)
	}

	return &Transformer{src: src, dst: dst, tr: tr}, nil
}

func (t *Transformer) Transform(xs, ys []float64) error {
	if t.tr == nil {
		return nil
	}
	if err := t.tr.TransformEx(xs, ys, nil, nil); err != nil {
		return fmt.Errorf("coordinate transform failed: %w", err)
	}
	return nil
}

func (t *Transformer) Close() {
	if t.tr != nil {
		t.tr.Close()
		t.tr = nil
	}
	if t.src != nil {
		t.src.Close()
		t.src = nil
	}
	if t.dst != nil {
		t.dst.Close()
		t.dst = nil
	}
}

var _ grid.CoordTransformer = (*Transformer)(nil)

// CellCenterLatLon converts the center of pixel (x, y) of a grid to WGS84
// latitude and longitude.
func CellCenterLatLon(g *grid.Grid, x, y int) (float64, float64, error) {
	tr, err := NewTransformer(g.EPSG, 4326)
	if err != nil {
		return 0, 0, err
	}
	defer tr.Close()

	gx, gy := g.CellCenter(x, y)
	xs, ys := []float64{gx}, []float64{gy}
	if err := tr.Transform(xs, ys); err != nil {
		return 0, 0, err
	}
	return ys[0], xs[0], nil
}

func maskNoData(data []float64, nodata float64) {
	for i, v := range data {
		if v == nodata {
			data[i] = math.NaN()
		}
	}
}
