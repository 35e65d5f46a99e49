package ui

import (
	"fmt"

	"github.com/terrafuse/terrafuse-cli/internal/delivery"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
)

// RegridScene handles the UI for resampling a scene's NDVI onto a regular
// grid built from a region of interest
func RegridScene() {
	PrintWarning("- The scene must be registered in the catalog file.\n- Scenes without a local file are downloaded for the region of interest, which requires PROCESS_API credentials.")

	scene, err := SelectScene("Enter the scene (name or number): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	region, err := ReadROI()
	if err != nil {
		PrintError(err.Error())
		return
	}

	resolution, err := ReadResolution()
	if err != nil {
		PrintError(err.Error())
		return
	}

	result, spec, err := delivery.RegridSceneNDVI(properties.CatalogPath(), scene, region, resolution)
	if err != nil {
		PrintError(fmt.Sprintf("Error regridding scene: %s", err.Error()))
		return
	}

	fmt.Printf("\n%sTarget grid: %s%s\n", ColorBlue, spec.String(), ColorReset)

	stats := result.Stats
	fmt.Printf("\n%sRegridded NDVI statistics:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s  valid cells: %d%s\n", ColorGreen, stats.Valid, ColorReset)
	fmt.Printf("%s  mean: %.4f (stddev %.4f)%s\n", ColorGreen, stats.Mean, stats.StdDev, ColorReset)
	fmt.Printf("%s  p05/median/p95: %.4f / %.4f / %.4f%s\n", ColorGreen, stats.P05, stats.Median, stats.P95, ColorReset)

	PrintSuccess(fmt.Sprintf("Successfully regridded '%s'!\nImage: %s", scene, result.ImagePath))
}
