// Package delivery wires catalog, raster access, regridding and rendering
// into the operations the CLI exposes.
package delivery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/terrafuse/terrafuse-cli/internal/cache"
	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/dataset"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
	"github.com/terrafuse/terrafuse-cli/internal/index"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
	"github.com/terrafuse/terrafuse-cli/internal/raster"
	"github.com/terrafuse/terrafuse-cli/internal/roi"
	"github.com/terrafuse/terrafuse-cli/output"
	"golang.org/x/sync/errgroup"
)

type CompareOptions struct {
	CatalogPath string
	SceneA      string
	SceneB      string
	ROI         roi.ROI
	// Resolution is the target cell size in the units of the target CRS
	// (meters for projected scenes).
	Resolution float64
	// CoarsenFactor aggregates the difference map into blocks of this many
	// cells per side. Zero or one disables coarsening.
	CoarsenFactor int
}

type CompareResult struct {
	Alignment grid.Alignment
	Spec      grid.Spec
	Stats     dataset.ChangeStats

	CSVPath        string
	ImagePathA     string
	ImagePathB     string
	ComparisonPath string
	DiffPath       string
	CoarseDiffPath string
}

// CompareScenes runs the whole comparison pipeline: load both scenes, compute
// NDVI, report grid misalignment, build the shared ROI grid, regrid both NDVI
// rasters onto it, difference them and write the result artifacts.
func CompareScenes(opts CompareOptions) (*CompareResult, error) {
	if opts.Resolution <= 0 {
		opts.Resolution = properties.DefaultResolution
	}

	c, err := catalog.Load(opts.CatalogPath)
	if err != nil {
		return nil, err
	}
	entryA, err := c.Scene(opts.SceneA)
	if err != nil {
		return nil, err
	}
	entryB, err := c.Scene(opts.SceneB)
	if err != nil {
		return nil, err
	}

	fetchBound := opts.ROI.Bound()
	ndviA, sceneA, err := sceneNDVI(entryA, &fetchBound, opts.Resolution)
	if err != nil {
		return nil, err
	}
	defer sceneA.Close()
	ndviB, sceneB, err := sceneNDVI(entryB, &fetchBound, opts.Resolution)
	if err != nil {
		return nil, err
	}
	defer sceneB.Close()

	alignment := grid.Compare(ndviA, ndviB)

	spec, err := targetSpec(opts.ROI.Bound(), sceneA.EPSG(), opts.Resolution)
	if err != nil {
		return nil, err
	}

	// The two regrids are independent, run them concurrently.
	var regriddedA, regriddedB *grid.Grid
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		regriddedA, err = regridTo(ndviA, spec)
		return err
	})
	eg.Go(func() error {
		var err error
		regriddedB, err = regridTo(ndviB, spec)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	varA := "ndvi_" + opts.SceneA
	varB := "ndvi_" + opts.SceneB
	ds := dataset.New(spec)
	if err := ds.Add(varA, regriddedA); err != nil {
		return nil, err
	}
	if err := ds.Add(varB, regriddedB); err != nil {
		return nil, err
	}
	diff, err := ds.Diff(varA, varB, "ndvi_change")
	if err != nil {
		return nil, err
	}
	stats, err := ds.Stats("ndvi_change")
	if err != nil {
		return nil, err
	}

	result := &CompareResult{Alignment: alignment, Spec: spec, Stats: stats}

	resultDir := filepath.Join(properties.DataPath(), "result", fmt.Sprintf("%s_vs_%s", opts.SceneA, opts.SceneB))

	result.ImagePathA = filepath.Join(resultDir, varA+".png")
	if err := output.RenderPNG(regriddedA, result.ImagePathA, output.VegetationRamp, -1, 1); err != nil {
		return nil, err
	}
	result.ImagePathB = filepath.Join(resultDir, varB+".png")
	if err := output.RenderPNG(regriddedB, result.ImagePathB, output.VegetationRamp, -1, 1); err != nil {
		return nil, err
	}
	result.ComparisonPath = filepath.Join(resultDir, "comparison.png")
	if err := output.RenderComparison(regriddedA, regriddedB, opts.SceneA, opts.SceneB, result.ComparisonPath, output.VegetationRamp, -1, 1); err != nil {
		return nil, err
	}
	result.DiffPath = filepath.Join(resultDir, "ndvi_change.png")
	if err := output.RenderPNG(diff, result.DiffPath, output.DivergingRamp, -0.5, 0.5); err != nil {
		return nil, err
	}

	if opts.CoarsenFactor > 1 {
		coarse, err := grid.Coarsen(diff, opts.CoarsenFactor, grid.MeanReducer)
		if err != nil {
			return nil, err
		}
		result.CoarseDiffPath = filepath.Join(resultDir, fmt.Sprintf("ndvi_change_%dx.png", opts.CoarsenFactor))
		if err := output.RenderPNG(coarse, result.CoarseDiffPath, output.DivergingRamp, -0.5, 0.5); err != nil {
			return nil, err
		}
	}

	toWGS84, err := raster.NewTransformer(spec.EPSG, 4326)
	if err != nil {
		return nil, err
	}
	defer toWGS84.Close()
	result.CSVPath = filepath.Join(resultDir, "pixels.csv")
	if err := ds.WriteCSV(result.CSVPath, toWGS84); err != nil {
		return nil, err
	}

	if err := statsCache().Set(statsCacheKey(opts), stats); err != nil {
		fmt.Printf("Warning: failed to cache change statistics: %v\n", err)
	}

	return result, nil
}

// CachedStats returns previously computed change statistics for the same
// comparison parameters, if any.
func CachedStats(opts CompareOptions) (dataset.ChangeStats, bool) {
	if opts.Resolution <= 0 {
		opts.Resolution = properties.DefaultResolution
	}
	return statsCache().Get(statsCacheKey(opts))
}

func statsCache() *cache.FileCache[dataset.ChangeStats] {
	return cache.NewFileCache[dataset.ChangeStats]("stats", 0)
}

func statsCacheKey(opts CompareOptions) string {
	b := opts.ROI.Bound()
	return statsCache().GenerateKey(opts.SceneA, opts.SceneB, b.Min[0], b.Min[1], b.Max[0], b.Max[1], opts.Resolution)
}

// sceneNDVI opens a catalog scene and computes its NDVI grid. When the
// raster file is missing and a fetch bound is given, the scene is first
// downloaded from its remote source.
func sceneNDVI(entry catalog.Entry, fetchBound *orb.Bound, resolution float64) (*grid.Grid, *raster.Scene, error) {
	if _, err := os.Stat(entry.Path); os.IsNotExist(err) {
		if entry.Remote == nil || fetchBound == nil {
			return nil, nil, fmt.Errorf("raster file %s for scene %s does not exist", entry.Path, entry.Name)
		}
		if err := raster.FetchScene(entry, *fetchBound, resolution); err != nil {
			return nil, nil, err
		}
	}

	scene, err := raster.Open(entry)
	if err != nil {
		return nil, nil, err
	}

	red, err := scene.Grid("red")
	if err != nil {
		scene.Close()
		return nil, nil, err
	}
	nir, err := scene.Grid("nir")
	if err != nil {
		scene.Close()
		return nil, nil, err
	}

	ndvi, err := index.NDVI(nir, red)
	if err != nil {
		scene.Close()
		return nil, nil, err
	}
	return ndvi, scene, nil
}

// targetSpec projects the WGS84 ROI bound into the target CRS and builds the
// shared grid covering it.
func targetSpec(b orb.Bound, epsg int, resolution float64) (grid.Spec, error) {
	tr, err := raster.NewTransformer(4326, epsg)
	if err != nil {
		return grid.Spec{}, err
	}
	defer tr.Close()

	projected, err := transformBound(b, tr)
	if err != nil {
		return grid.Spec{}, err
	}
	return grid.SpecFromBound(projected, resolution, epsg)
}

// transformBound projects the four bound corners and takes the envelope.
func transformBound(b orb.Bound, tr grid.CoordTransformer) (orb.Bound, error) {
	xs := []float64{b.Min[0], b.Max[0], b.Min[0], b.Max[0]}
	ys := []float64{b.Min[1], b.Min[1], b.Max[1], b.Max[1]}
	if err := tr.Transform(xs, ys); err != nil {
		return orb.Bound{}, err
	}

	out := orb.Bound{Min: orb.Point{xs[0], ys[0]}, Max: orb.Point{xs[0], ys[0]}}
	for i := 1; i < len(xs); i++ {
		out = out.Extend(orb.Point{xs[i], ys[i]})
	}
	return out, nil
}

// regridTo resamples a grid onto the target spec through a CRS transformer
// from the target CRS into the grid's CRS.
func regridTo(g *grid.Grid, spec grid.Spec) (*grid.Grid, error) {
	tr, err := raster.NewTransformer(spec.EPSG, g.EPSG)
	if err != nil {
		return nil, err
	}
	defer tr.Close()
	return grid.Regrid(g, spec, tr, grid.Bilinear)
}
