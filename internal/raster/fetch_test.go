package raster

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrafuse/terrafuse-cli/internal/catalog"
)

func TestCalculatePixels(t *testing.T) {
	// 0.01 degrees at 10m resolution is about 111 pixels.
	assert.Equal(t, 111, calculatePixels(0.01, 10))
	// Tiny extents still produce one pixel.
	assert.Equal(t, 1, calculatePixels(0.0000001, 10))
	// Large extents clamp to the process API limit.
	assert.Equal(t, 2500, calculatePixels(10, 10))
}

func TestBuildProcessRequest(t *testing.T) {
	remote := catalog.Remote{
		URL:        "https://example.com/api/v1/process",
		Collection: "sentinel-2-l2a",
		From:       "2024-06-01T00:00:00Z",
		To:         "2024-06-30T23:59:59Z",
	}
	b := orb.Bound{Min: orb.Point{-48.375, -21.625}, Max: orb.Point{-48.25, -21.5}}

	payload, err := buildProcessRequest(remote, b, 10)
	require.NoError(t, err)

	input := payload["input"].(map[string]interface{})
	data := input["data"].([]map[string]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "sentinel-2-l2a", data[0]["type"])

	filter := data[0]["dataFilter"].(map[string]interface{})
	timeRange := filter["timeRange"].(map[string]string)
	assert.Equal(t, "2024-06-01T00:00:00Z", timeRange["from"])

	output := payload["output"].(map[string]interface{})
	assert.Equal(t, 1387, output["width"])
	assert.Equal(t, 1387, output["height"])

	bounds := input["bounds"].(map[string]interface{})
	geometry := bounds["geometry"].(map[string]interface{})
	assert.Equal(t, "Polygon", geometry["type"])
}

func TestFetchSceneRequiresRemote(t *testing.T) {
	err := FetchScene(catalog.Entry{Name: "local"}, orb.Bound{}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no remote source")
}
