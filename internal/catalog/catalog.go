// Package catalog reads the scene catalog that maps dataset names to raster
// files and band roles.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Remote describes where a scene can be fetched from when its raster file is
// not present locally.
type Remote struct {
	URL        string `yaml:"url"`
	Collection string `yaml:"collection"`
	From       string `yaml:"from"`
	To         string `yaml:"to"`
}

// Entry describes one raster scene in the catalog.
type Entry struct {
	Name        string         `yaml:"-"`
	Path        string         `yaml:"path"`
	Description string         `yaml:"description"`
	Bands       map[string]int `yaml:"bands"`
	EPSG        int            `yaml:"epsg"`
	NoData      *float64       `yaml:"nodata"`
	Remote      *Remote        `yaml:"remote"`
}

// BandIndex returns the 1-based band index for a role such as "red" or "nir".
func (e Entry) BandIndex(role string) (int, error) {
	idx, ok := e.Bands[role]
	if !ok {
		return 0, fmt.Errorf("scene %s has no %q band", e.Name, role)
	}
	return idx, nil
}

type Catalog struct {
	path   string
	Scenes map[string]Entry `yaml:"scenes"`
}

// Load reads and validates a catalog file. Relative raster paths are resolved
// against the catalog's directory.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if len(c.Scenes) == 0 {
		return nil, fmt.Errorf("catalog %s defines no scenes", path)
	}

	c.path = path
	dir := filepath.Dir(path)
	for name, entry := range c.Scenes {
		entry.Name = name
		if entry.Path == "" {
			return nil, fmt.Errorf("scene %s in catalog %s has no path", name, path)
		}
		if !filepath.IsAbs(entry.Path) {
			entry.Path = filepath.Join(dir, entry.Path)
		}
		if len(entry.Bands) == 0 {
			return nil, fmt.Errorf("scene %s in catalog %s declares no bands", name, path)
		}
		c.Scenes[name] = entry
	}

	return &c, nil
}

// Scene looks a scene up by name.
func (c *Catalog) Scene(name string) (Entry, error) {
	entry, ok := c.Scenes[name]
	if !ok {
		return Entry{}, fmt.Errorf("scene %s not found in catalog %s", name, c.path)
	}
	return entry, nil
}

// Names lists the scene names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Scenes))
	for name := range c.Scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path returns the catalog file location.
func (c *Catalog) Path() string {
	return c.path
}
