package ui

import (
	"fmt"

	"github.com/terrafuse/terrafuse-cli/internal/delivery"
	"github.com/terrafuse/terrafuse-cli/internal/notification"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
)

// CompareScenes handles the UI for comparing NDVI between two catalog scenes
// on a shared grid
func CompareScenes() {
	PrintWarning("- Both scenes must be registered in the catalog file.\n- Scenes without a local file are downloaded for the region of interest, which requires PROCESS_API credentials.")

	sceneA, err := SelectScene("Enter the first scene (name or number): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	sceneB, err := SelectScene("Enter the second scene (name or number): ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	if sceneA == sceneB {
		PrintError("The two scenes must be different.")
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

	factor := 0
	if ReadString("Also aggregate the difference map to a coarser grid? (y/n): ") == "y" {
		factor, err = ReadPositiveInt("Enter the aggregation factor (cells per block side): ")
		if err != nil {
			PrintError(err.Error())
			return
		}
	}

	opts := delivery.CompareOptions{
		CatalogPath:   properties.CatalogPath(),
		SceneA:        sceneA,
		SceneB:        sceneB,
		ROI:           region,
		Resolution:    resolution,
		CoarsenFactor: factor,
	}

	if stats, ok := delivery.CachedStats(opts); ok {
		PrintInfo(fmt.Sprintf("\nCached change statistics for this comparison:\n  valid cells: %d (%.1f%% coverage)\n  mean change: %+.4f (stddev %.4f)\n  p05/median/p95: %+.4f / %+.4f / %+.4f\n", stats.Valid, stats.Coverage*100, stats.Mean, stats.StdDev, stats.P05, stats.Median, stats.P95))
		if ReadString("Recompute anyway? (y/n): ") != "y" {
			return
		}
	}

	result, err := delivery.CompareScenes(opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error comparing scenes: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Comparison of '%s' and '%s' failed: %s", sceneA, sceneB, err.Error()))
		return
	}

	fmt.Printf("\n%sNative grids: %s%s\n", ColorBlue, result.Alignment.String(), ColorReset)
	fmt.Printf("%sShared grid: %s%s\n", ColorBlue, result.Spec.String(), ColorReset)

	stats := result.Stats
	fmt.Printf("\n%sNDVI change statistics:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s  valid cells: %d (%.1f%% coverage)%s\n", ColorGreen, stats.Valid, stats.Coverage*100, ColorReset)
	fmt.Printf("%s  mean change: %+.4f (stddev %.4f)%s\n", ColorGreen, stats.Mean, stats.StdDev, ColorReset)
	fmt.Printf("%s  p05/median/p95: %+.4f / %+.4f / %+.4f%s\n", ColorGreen, stats.P05, stats.Median, stats.P95, ColorReset)
	fmt.Printf("%s  cells increased: %d, decreased: %d%s\n", ColorGreen, stats.Increased, stats.Decreased, ColorReset)

	PrintSuccess(fmt.Sprintf("Successfully compared '%s' and '%s'!\nComparison image: %s\nDifference map: %s\nPixel table: %s", sceneA, sceneB, result.ComparisonPath, result.DiffPath, result.CSVPath))
	if result.CoarseDiffPath != "" {
		PrintSuccess(fmt.Sprintf("Aggregated difference map: %s", result.CoarseDiffPath))
	}
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Comparison of '%s' and '%s' finished with mean NDVI change %+.4f", sceneA, sceneB, stats.Mean))
}
