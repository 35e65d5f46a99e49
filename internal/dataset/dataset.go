// Package dataset groups several grids that share one target grid spec, the
// way the regridded variables of a comparison belong together.
package dataset

import (
	"fmt"
	"math"

	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

type Dataset struct {
	spec  grid.Spec
	vars  map[string]*grid.Grid
	order []string
}

func New(spec grid.Spec) *Dataset {
	return &Dataset{
		spec: spec,
		vars: make(map[string]*grid.Grid),
	}
}

func (d *Dataset) Spec() grid.Spec {
	return d.spec
}

// Add registers a variable. The grid must match the dataset's spec exactly.
func (d *Dataset) Add(name string, g *grid.Grid) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if _, exists := d.vars[name]; exists {
		return fmt.Errorf("variable %s already present", name)
	}
	if !g.Spec().Equal(d.spec) {
		return fmt.Errorf("variable %s grid (%s) does not match dataset grid (%s)", name, g.Spec(), d.spec)
	}
	d.vars[name] = g
	d.order = append(d.order, name)
	return nil
}

func (d *Dataset) Var(name string) (*grid.Grid, error) {
	g, ok := d.vars[name]
	if !ok {
		return nil, fmt.Errorf("variable %s not found in dataset", name)
	}
	return g, nil
}

// Names lists variables in insertion order.
func (d *Dataset) Names() []string {
	return append([]string(nil), d.order...)
}

// Diff adds a variable out = a - b computed per pixel. Cells where either
// input is nodata stay nodata.
func (d *Dataset) Diff(a, b, out string) (*grid.Grid, error) {
	ga, err := d.Var(a)
	if err != nil {
		return nil, err
	}
	gb, err := d.Var(b)
	if err != nil {
		return nil, err
	}

	diff, err := d.spec.NewGrid()
	if err != nil {
		return nil, err
	}
	for i := range diff.Data {
		diff.Data[i] = ga.Data[i] - gb.Data[i]
	}

	if err := d.Add(out, diff); err != nil {
		return nil, err
	}
	return diff, nil
}

// ChangeStats summarizes a difference variable.
type ChangeStats struct {
	Variable  string
	Valid     int
	Coverage  float64
	Mean      float64
	StdDev    float64
	P05       float64
	Median    float64
	P95       float64
	Increased int
	Decreased int
}

// Stats computes NaN-aware change statistics for a variable.
func (d *Dataset) Stats(name string) (ChangeStats, error) {
	g, err := d.Var(name)
	if err != nil {
		return ChangeStats{}, err
	}

	s := grid.Summarize(g)
	increased, decreased := 0, 0
	for _, v := range g.Data {
		switch {
		case math.IsNaN(v):
		case v > 0:
			increased++
		case v < 0:
			decreased++
		}
	}

	return ChangeStats{
		Variable:  name,
		Valid:     s.Valid,
		Coverage:  float64(s.Valid) / float64(len(g.Data)),
		Mean:      s.Mean,
		StdDev:    s.StdDev,
		P05:       s.P05,
		Median:    s.Median,
		P95:       s.P95,
		Increased: increased,
		Decreased: decreased,
	}, nil
}
