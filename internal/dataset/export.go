package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

// PixelRow is one exported cell value in long format: one row per cell per
// variable, so any variable set fits the same schema.
type PixelRow struct {
	X         int     `csv:"x"`
	Y         int     `csv:"y"`
	Longitude float64 `csv:"longitude"`
	Latitude  float64 `csv:"latitude"`
	Variable  string  `csv:"variable"`
	Value     float64 `csv:"value"`
}

// Rows flattens the dataset's valid cells into long-format rows. Cell centers
// are converted to WGS84 through tr, which must transform from the dataset
// CRS to EPSG:4326.
func (d *Dataset) Rows(tr grid.CoordTransformer) ([]PixelRow, error) {
	if tr == nil {
		tr = grid.Identity
	}

	xs := make([]float64, d.spec.Width*d.spec.Height)
	ys := make([]float64, d.spec.Width*d.spec.Height)
	for y := 0; y < d.spec.Height; y++ {
		for x := 0; x < d.spec.Width; x++ {
			i := y*d.spec.Width + x
			xs[i], ys[i] = d.spec.CellCenter(x, y)
		}
	}
	if err := tr.Transform(xs, ys); err != nil {
		return nil, fmt.Errorf("failed to transform cell centers: %w", err)
	}

	var rows []PixelRow
	for _, name := range d.order {
		g := d.vars[name]
		for y := 0; y < d.spec.Height; y++ {
			for x := 0; x < d.spec.Width; x++ {
				i := y*d.spec.Width + x
				v := g.Data[i]
				if math.IsNaN(v) {
					continue
				}
				rows = append(rows, PixelRow{
					X:         x,
					Y:         y,
					Longitude: xs[i],
					Latitude:  ys[i],
					Variable:  name,
					Value:     v,
				})
			}
		}
	}
	return rows, nil
}

// WriteCSV exports the dataset to a CSV file.
func (d *Dataset) WriteCSV(path string, tr grid.CoordTransformer) error {
	rows, err := d.Rows(tr)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("dataset has no valid cells to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write CSV file %s: %w", path, err)
	}
	return nil
}
