package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SummaryStats describes the distribution of a grid's valid cells.
type SummaryStats struct {
	Valid  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P05    float64
	Median float64
	P95    float64
}

// Summarize computes NaN-aware statistics over the grid.
func Summarize(g *Grid) SummaryStats {
	values := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return SummaryStats{
			Mean: math.NaN(), StdDev: math.NaN(), Min: math.NaN(),
			Max: math.NaN(), P05: math.NaN(), Median: math.NaN(), P95: math.NaN(),
		}
	}

	sort.Float64s(values)
	return SummaryStats{
		Valid:  len(values),
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Min:    values[0],
		Max:    values[len(values)-1],
		P05:    stat.Quantile(0.05, stat.Empirical, values, nil),
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, values, nil),
	}
}
