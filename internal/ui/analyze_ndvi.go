package ui

import (
	"fmt"

	"github.com/terrafuse/terrafuse-cli/internal/delivery"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
)

// AnalyzeNDVI handles the UI for computing NDVI of a single scene on its
// native grid
func AnalyzeNDVI() {
	PrintWarning("- The scene must be registered in the catalog file with a local raster file.")

	scene, err := SelectScene("Enter the scene (name or number): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	result, err := delivery.ComputeSceneNDVI(properties.CatalogPath(), scene)
	if err != nil {
		PrintError(fmt.Sprintf("Error computing NDVI: %s", err.Error()))
		return
	}

	stats := result.Stats
	fmt.Printf("\n%sNDVI statistics for '%s':%s\n", ColorGreen, scene, ColorReset)
	fmt.Printf("%s  valid cells: %d%s\n", ColorGreen, stats.Valid, ColorReset)
	fmt.Printf("%s  mean: %.4f (stddev %.4f)%s\n", ColorGreen, stats.Mean, stats.StdDev, ColorReset)
	fmt.Printf("%s  min/max: %.4f / %.4f%s\n", ColorGreen, stats.Min, stats.Max, ColorReset)
	fmt.Printf("%s  p05/median/p95: %.4f / %.4f / %.4f%s\n", ColorGreen, stats.P05, stats.Median, stats.P95, ColorReset)

	PrintSuccess(fmt.Sprintf("Successfully computed NDVI for '%s'!\nImage: %s", scene, result.ImagePath))
}
