package ui

import (
	"fmt"
	"os"

	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
)

// ListScenes handles the UI for viewing the scenes registered in the catalog
func ListScenes() {
	c, err := catalog.Load(properties.CatalogPath())
	if err != nil {
		PrintError(fmt.Sprintf("Error reading catalog file: %s", err.Error()))
		return
	}

	PrintWarning(fmt.Sprintf("To add a new scene, register it in '%s'.", properties.CatalogPath()))

	fmt.Printf("\n%sAvailable scenes:%s\n", ColorGreen, ColorReset)
	for _, name := range c.Names() {
		entry, err := c.Scene(name)
		if err != nil {
			continue
		}

		status := "local"
		if _, err := os.Stat(entry.Path); err != nil {
			status = "missing"
			if entry.Remote != nil {
				status = "remote"
			}
		}

		fmt.Printf("%s- %s (%s)%s\n", ColorGreen, name, status, ColorReset)
		if entry.Description != "" {
			fmt.Printf("%s    %s%s\n", ColorGreen, entry.Description, ColorReset)
		}
		fmt.Printf("%s    %s%s\n", ColorGreen, entry.Path, ColorReset)
	}
}
