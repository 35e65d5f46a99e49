package delivery

import (
	"fmt"
	"path/filepath"

	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
	"github.com/terrafuse/terrafuse-cli/internal/roi"
	"github.com/terrafuse/terrafuse-cli/output"
)

type SceneNDVIResult struct {
	Stats     grid.SummaryStats
	ImagePath string
}

// ComputeSceneNDVI computes the NDVI of one catalog scene on its native grid
// and renders it.
func ComputeSceneNDVI(catalogPath, scene string) (*SceneNDVIResult, error) {
	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	entry, err := c.Scene(scene)
	if err != nil {
		return nil, err
	}

	ndvi, s, err := sceneNDVI(entry, nil, properties.DefaultResolution)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	imagePath := filepath.Join(properties.DataPath(), "result", scene, "ndvi.png")
	if err := output.RenderPNG(ndvi, imagePath, output.VegetationRamp, -1, 1); err != nil {
		return nil, err
	}

	return &SceneNDVIResult{Stats: grid.Summarize(ndvi), ImagePath: imagePath}, nil
}

// RegridSceneNDVI computes a scene's NDVI and resamples it onto a fresh grid
// covering the ROI at the given resolution.
func RegridSceneNDVI(catalogPath, scene string, r roi.ROI, resolution float64) (*SceneNDVIResult, grid.Spec, error) {
	if resolution <= 0 {
		resolution = properties.DefaultResolution
	}

	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, grid.Spec{}, err
	}
	entry, err := c.Scene(scene)
	if err != nil {
		return nil, grid.Spec{}, err
	}

	fetchBound := r.Bound()
	ndvi, s, err := sceneNDVI(entry, &fetchBound, resolution)
	if err != nil {
		return nil, grid.Spec{}, err
	}
	defer s.Close()

	spec, err := targetSpec(r.Bound(), s.EPSG(), resolution)
	if err != nil {
		return nil, grid.Spec{}, err
	}

	regridded, err := regridTo(ndvi, spec)
	if err != nil {
		return nil, grid.Spec{}, err
	}

	imagePath := filepath.Join(properties.DataPath(), "result", scene, fmt.Sprintf("ndvi_regridded_%.0fm.png", resolution))
	if err := output.RenderPNG(regridded, imagePath, output.VegetationRamp, -1, 1); err != nil {
		return nil, grid.Spec{}, err
	}

	return &SceneNDVIResult{Stats: grid.Summarize(regridded), ImagePath: imagePath}, spec, nil
}

// CoarsenSceneNDVI computes a scene's NDVI and aggregates it into blocks of
// factor x factor cells with a mean reducer.
func CoarsenSceneNDVI(catalogPath, scene string, factor int) (*SceneNDVIResult, error) {
	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	entry, err := c.Scene(scene)
	if err != nil {
		return nil, err
	}

	ndvi, s, err := sceneNDVI(entry, nil, properties.DefaultResolution)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	coarse, err := grid.Coarsen(ndvi, factor, grid.MeanReducer)
	if err != nil {
		return nil, err
	}

	imagePath := filepath.Join(properties.DataPath(), "result", scene, fmt.Sprintf("ndvi_%dx.png", factor))
	if err := output.RenderPNG(coarse, imagePath, output.VegetationRamp, -1, 1); err != nil {
		return nil, err
	}

	return &SceneNDVIResult{Stats: grid.Summarize(coarse), ImagePath: imagePath}, nil
}
