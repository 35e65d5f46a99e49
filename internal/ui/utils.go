package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
	"github.com/terrafuse/terrafuse-cli/internal/roi"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadFloat reads a floating point number from stdin with validation
func ReadFloat(prompt string) (float64, error) {
	input := ReadString(prompt)
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// ReadPositiveInt reads a positive integer from stdin
func ReadPositiveInt(prompt string) (int, error) {
	input := ReadString(prompt)
	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid number: %s. Please enter a positive integer", input)
	}
	return value, nil
}

// SelectScene lists the catalog scenes and reads the chosen name
func SelectScene(prompt string) (string, error) {
	c, err := catalog.Load(properties.CatalogPath())
	if err != nil {
		return "", err
	}

	names := c.Names()
	fmt.Printf("%s\nAvailable scenes:%s\n", ColorGreen, ColorReset)
	for i, name := range names {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, name, ColorReset)
	}

	input := ReadString(prompt)
	if idx, err := strconv.Atoi(input); err == nil {
		if idx < 1 || idx > len(names) {
			return "", fmt.Errorf("invalid scene number %d", idx)
		}
		return names[idx-1], nil
	}

	if _, err := c.Scene(input); err != nil {
		return "", err
	}
	return input, nil
}

// ReadROI reads a region of interest, either from a center point with a
// buffer distance or from a GeoJSON feature
func ReadROI() (roi.ROI, error) {
	mode := ReadString("Enter ROI mode ('center' for point+buffer, 'feature' for GeoJSON): ")
	switch mode {
	case "feature":
		path := ReadString("Enter the GeoJSON file path: ")
		id := ReadString("Enter the feature id (scene_id property): ")
		return roi.FromGeoJSONFeature(path, "scene_id", id)
	case "center", "":
		lat, err := ReadFloat("Enter the center latitude: ")
		if err != nil {
			return roi.ROI{}, err
		}
		lon, err := ReadFloat("Enter the center longitude: ")
		if err != nil {
			return roi.ROI{}, err
		}
		buffer, err := ReadFloat("Enter the buffer distance in meters: ")
		if err != nil {
			return roi.ROI{}, err
		}
		return roi.FromCenter(lat, lon, buffer)
	default:
		return roi.ROI{}, fmt.Errorf("unknown ROI mode: %s", mode)
	}
}

// ReadResolution reads the target cell size, defaulting to the Sentinel-2
// visible/NIR resolution
func ReadResolution() (float64, error) {
	input := ReadString(fmt.Sprintf("Enter the target resolution in meters (default %.0f): ", properties.DefaultResolution))
	if input == "" {
		return properties.DefaultResolution, nil
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid resolution: %s", input)
	}
	return value, nil
}
