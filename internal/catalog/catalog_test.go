package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `scenes:
  harvest_2023:
    path: rasters/harvest_2023.tif
    description: Post-harvest scene
    epsg: 32722
    bands:
      blue: 1
      green: 2
      red: 3
      nir: 4
  harvest_2024:
    path: /data/rasters/harvest_2024.tif
    nodata: -9999
    bands:
      red: 1
      nir: 2
    remote:
      url: https://example.com/api/v1/process
      collection: sentinel-2-l2a
      from: 2024-06-01T00:00:00Z
      to: 2024-06-30T23:59:59Z
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, testCatalog)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"harvest_2023", "harvest_2024"}, c.Names())
	assert.Equal(t, path, c.Path())

	entry, err := c.Scene("harvest_2023")
	require.NoError(t, err)
	assert.Equal(t, "harvest_2023", entry.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "rasters/harvest_2023.tif"), entry.Path)
	assert.Equal(t, 32722, entry.EPSG)
	assert.Nil(t, entry.Remote)

	idx, err := entry.BandIndex("nir")
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = entry.BandIndex("swir")
	require.Error(t, err)
}

func TestLoadKeepsAbsolutePathsAndRemote(t *testing.T) {
	c, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	entry, err := c.Scene("harvest_2024")
	require.NoError(t, err)
	assert.Equal(t, "/data/rasters/harvest_2024.tif", entry.Path)
	require.NotNil(t, entry.NoData)
	assert.Equal(t, -9999.0, *entry.NoData)
	require.NotNil(t, entry.Remote)
	assert.Equal(t, "sentinel-2-l2a", entry.Remote.Collection)
}

func TestSceneNotFound(t *testing.T) {
	c, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	_, err = c.Scene("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, err.Error(), "catalog.yml")
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)

	_, err = Load(writeCatalog(t, "scenes: {}\n"))
	require.Error(t, err)

	noBands := `scenes:
  broken:
    path: x.tif
`
	_, err = Load(writeCatalog(t, noBands))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bands")

	noPath := `scenes:
  broken:
    bands:
      red: 1
      nir: 2
`
	_, err = Load(writeCatalog(t, noPath))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path")
}

func TestLoadAcceptsScenesWithoutNDVIBands(t *testing.T) {
	classified := `scenes:
  landcover:
    path: landcover.tif
    bands:
      class: 1
`
	c, err := Load(writeCatalog(t, classified))
	require.NoError(t, err)

	entry, err := c.Scene("landcover")
	require.NoError(t, err)

	// NDVI-capable roles are only required when they are actually used.
	_, err = entry.BandIndex("red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "red" band`)
}
