// Package output renders grids to image files.
package output

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

// Ramp maps a normalized value in [0,1] to an RGB color in [0,1].
type Ramp func(t float64) (r, g, b float64)

// VegetationRamp runs from brown over yellow to deep green, the usual NDVI
// coloring.
func VegetationRamp(t float64) (float64, float64, float64) {
	t = clamp01(t)
	if t < 0.5 {
		// brown -> yellow
		return lerp(0.55, 0.9, t*2), lerp(0.35, 0.85, t*2), lerp(0.2, 0.3, t*2)
	}
	// yellow -> green
	return lerp(0.9, 0.0, (t-0.5)*2), lerp(0.85, 0.5, (t-0.5)*2), lerp(0.3, 0.1, (t-0.5)*2)
}

// DivergingRamp runs blue - white - red, centered on 0.5. Used for difference
// maps where the sign matters.
func DivergingRamp(t float64) (float64, float64, float64) {
	t = clamp01(t)
	if t < 0.5 {
		return lerp(0.1, 1, t*2), lerp(0.25, 1, t*2), lerp(0.7, 1, t*2)
	}
	return 1, lerp(1, 0.2, (t-0.5)*2), lerp(1, 0.15, (t-0.5)*2)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func paintGrid(dc *gg.Context, g *grid.Grid, offsetX, offsetY int, ramp Ramp, min, max float64) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			if math.IsNaN(v) {
				continue // nodata stays transparent
			}
			r, gr, b := ramp((v - min) / (max - min))
			dc.SetRGB(r, gr, b)
			dc.SetPixel(offsetX+x, offsetY+y)
		}
	}
}

// RenderPNG draws the grid through the ramp, scaling values from min to max,
// and writes a PNG. Nodata cells come out transparent.
func RenderPNG(g *grid.Grid, path string, ramp Ramp, min, max float64) error {
	if max <= min {
		return fmt.Errorf("invalid value range [%f, %f]", min, max)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dc := gg.NewContext(g.Width, g.Height)
	paintGrid(dc, g, 0, 0, ramp, min, max)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

const comparisonGap = 8
const labelHeight = 16

// RenderComparison draws two grids of the same shape side by side with their
// labels, for the before/after view of a scene comparison.
func RenderComparison(a, b *grid.Grid, labelA, labelB, path string, ramp Ramp, min, max float64) error {
	if a.Width != b.Width || a.Height != b.Height {
		return fmt.Errorf("comparison grids differ in shape: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	if max <= min {
		return fmt.Errorf("invalid value range [%f, %f]", min, max)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dc := gg.NewContext(a.Width*2+comparisonGap, a.Height+labelHeight)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(labelA, 2, 12)
	dc.DrawString(labelB, float64(a.Width+comparisonGap+2), 12)

	paintGrid(dc, a, 0, labelHeight, ramp, min, max)
	paintGrid(dc, b, a.Width+comparisonGap, labelHeight, ramp, min, max)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
