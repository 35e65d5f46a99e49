package ui

import (
	"fmt"

	"github.com/terrafuse/terrafuse-cli/internal/delivery"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
)

// CoarsenScene handles the UI for aggregating a scene's NDVI to a coarser
// resolution
func CoarsenScene() {
	PrintWarning("- The scene must be registered in the catalog file with a local raster file.\n- Blocks of factor x factor cells are averaged into one coarse cell.")

	scene, err := SelectScene("Enter the scene (name or number): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	factor, err := ReadPositiveInt("Enter the aggregation factor (cells per block side): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	result, err := delivery.CoarsenSceneNDVI(properties.CatalogPath(), scene, factor)
	if err != nil {
		PrintError(fmt.Sprintf("Error aggregating scene: %s", err.Error()))
		return
	}

	stats := result.Stats
	fmt.Printf("\n%sAggregated NDVI statistics:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s  valid cells: %d%s\n", ColorGreen, stats.Valid, ColorReset)
	fmt.Printf("%s  mean: %.4f (stddev %.4f)%s\n", ColorGreen, stats.Mean, stats.StdDev, ColorReset)

	PrintSuccess(fmt.Sprintf("Successfully aggregated '%s' by a factor of %d!\nImage: %s", scene, factor, result.ImagePath))
}
