package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Reducer collapses the valid values of one coarse cell into a single value.
// It receives only non-NaN samples; an empty slice means the whole block was
// nodata and the reducer is not called.
type Reducer func(values []float64) float64

func MeanReducer(values []float64) float64 {
	return stat.Mean(values, nil)
}

func MinReducer(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func MaxReducer(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func CountReducer(values []float64) float64 {
	return float64(len(values))
}

// Coarsen aggregates g into blocks of factor x factor cells, producing a grid
// with factor-times larger cells. Partial blocks at the right and bottom
// edges aggregate whatever cells they cover.
func Coarsen(g *Grid, factor int, reduce Reducer) (*Grid, error) {
	if factor < 1 {
		return nil, fmt.Errorf("coarsen factor must be >= 1, got %d", factor)
	}
	if factor == 1 {
		out, err := FromData(g.Width, g.Height, g.GT, g.EPSG, append([]float64(nil), g.Data...))
		return out, err
	}

	width := (g.Width + factor - 1) / factor
	height := (g.Height + factor - 1) / factor
	gt := g.GT
	gt[1] *= float64(factor)
	gt[5] *= float64(factor)

	out, err := New(width, height, gt, g.EPSG)
	if err != nil {
		return nil, err
	}

	block := make([]float64, 0, factor*factor)
	for cy := 0; cy < height; cy++ {
		for cx := 0; cx < width; cx++ {
			block = block[:0]
			for y := cy * factor; y < (cy+1)*factor && y < g.Height; y++ {
				for x := cx * factor; x < (cx+1)*factor && x < g.Width; x++ {
					if v := g.At(x, y); !math.IsNaN(v) {
						block = append(block, v)
					}
				}
			}
			if len(block) > 0 {
				out.Set(cx, cy, reduce(block))
			}
		}
	}

	return out, nil
}
