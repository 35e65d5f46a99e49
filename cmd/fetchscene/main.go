package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
	"github.com/terrafuse/terrafuse-cli/internal/raster"
	"github.com/terrafuse/terrafuse-cli/internal/roi"
)

func main() {
	scene := flag.String("scene", "", "catalog scene to fetch")
	lat := flag.Float64("lat", 0, "region of interest center latitude")
	lon := flag.Float64("lon", 0, "region of interest center longitude")
	buffer := flag.Float64("buffer", 1000, "buffer distance around the center in meters")
	resolution := flag.Float64("resolution", properties.DefaultResolution, "pixel size in meters")
	flag.Parse()

	if *scene == "" {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Println("=== Terrafuse Scene Fetch ===")
	fmt.Printf("Scene: %s\n", *scene)
	fmt.Printf("Center: %.6f, %.6f (buffer %.0fm)\n", *lat, *lon, *buffer)
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		fmt.Println("Make sure you have set the required environment variables:")
		fmt.Println("- PROCESS_API_CLIENT_ID")
		fmt.Println("- PROCESS_API_CLIENT_SECRET")
		fmt.Println("- PROCESS_API_TOKEN_URL")
		fmt.Println("- ROOT_PATH")
		fmt.Println()
	}

	c, err := catalog.Load(properties.CatalogPath())
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	entry, err := c.Scene(*scene)
	if err != nil {
		log.Fatalf("Failed to resolve scene: %v", err)
	}
	if entry.Remote == nil {
		log.Fatalf("Scene '%s' has no remote source configured", *scene)
	}

	region, err := roi.FromCenter(*lat, *lon, *buffer)
	if err != nil {
		log.Fatalf("Invalid region of interest: %v", err)
	}

	fmt.Printf("Requesting '%s' from %s (%s to %s)...\n",
		entry.Remote.Collection, entry.Remote.URL, entry.Remote.From, entry.Remote.To)

	if err := raster.FetchScene(entry, region.Bound(), *resolution); err != nil {
		log.Fatalf("Failed to fetch scene: %v", err)
	}
	fmt.Println("✓ Scene downloaded successfully")

	s, err := raster.Open(entry)
	if err != nil {
		log.Fatalf("Failed to open downloaded raster: %v", err)
	}
	defer s.Close()

	width, height := s.Size()
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("File: %s\n", entry.Path)
	fmt.Printf("Size: %dx%d\n", width, height)
	fmt.Printf("EPSG: %d\n", s.EPSG())

	fmt.Println("\n✓ Fetch completed successfully!")
}
