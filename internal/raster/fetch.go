package raster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

const fetchRetries = 10

// Fetch-side evalscript: blue, green, red, nir as float32 so indexes can be
// computed without rescaling.
const evalscript = `
    //VERSION=3
    function setup() {
      return {
        input: ["B02", "B03", "B04", "B08"],
        output: {
          id: "default",
          bands: 4,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B02, sample.B03, sample.B04, sample.B08];
    }
  `

func calculatePixels(distance float64, resolution float64) int {
	pixels := int(distance * (111_000.0 / resolution))
	if pixels < 1 {
		return 1
	}
	// Process APIs cap the output size.
	if pixels > 2500 {
		return 2500
	}
	return pixels
}

func buildProcessRequest(remote catalog.Remote, b orb.Bound, resolution float64) (map[string]interface{}, error) {
	geometry := geojson.NewGeometry(b.ToPolygon())
	geometryJSON, err := json.Marshal(geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request geometry: %w", err)
	}
	var geometryMap map[string]interface{}
	if err := json.Unmarshal(geometryJSON, &geometryMap); err != nil {
		return nil, fmt.Errorf("failed to decode request geometry: %w", err)
	}

	return map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geometryMap,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": remote.From,
							"to":   remote.To,
						},
					},
					"type": remote.Collection,
				},
			},
		},
		"output": map[string]interface{}{
			"width":  calculatePixels(b.Max[0]-b.Min[0], resolution),
			"height": calculatePixels(b.Max[1]-b.Min[1], resolution),
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}, nil
}

// FetchScene downloads the scene's raster from its remote source and writes
// it to the entry's path. Authentication uses the OAuth2 client-credentials
// flow configured through the PROCESS_API_* environment variables.
func FetchScene(entry catalog.Entry, b orb.Bound, resolution float64) error {
	if entry.Remote == nil {
		return fmt.Errorf("scene %s has no remote source", entry.Name)
	}

	clientID := properties.ProcessAPIClientID()
	clientSecret := properties.ProcessAPIClientSecret()
	tokenURL := properties.ProcessAPITokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return fmt.Errorf("missing required environment variables: PROCESS_API_CLIENT_ID, PROCESS_API_CLIENT_SECRET, or PROCESS_API_TOKEN_URL")
	}

	payload, err := buildProcessRequest(*entry.Remote, b, resolution)
	if err != nil {
		return err
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal process request: %w", err)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	var content []byte
	for attempt := 1; attempt <= fetchRetries; attempt++ {
		response, err := httpClient.Post(entry.Remote.URL, "application/json", bytes.NewBuffer(requestBody))
		if err != nil {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
			time.Sleep(5 * time.Second)
			continue
		}

		body, readErr := io.ReadAll(response.Body)
		response.Body.Close()
		if readErr != nil {
			return fmt.Errorf("failed to read process response: %w", readErr)
		}

		if response.StatusCode == http.StatusOK {
			content = body
			break
		}
		if response.StatusCode == http.StatusForbidden || response.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("unauthorized access, check your client ID and secret")
		}

		fmt.Printf("Attempt %d failed: %s\n", attempt, string(body))
		time.Sleep(5 * time.Second)
	}
	if content == nil {
		return fmt.Errorf("failed to fetch scene %s after %d attempts", entry.Name, fetchRetries)
	}

	if err := os.MkdirAll(filepath.Dir(entry.Path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create raster directory: %w", err)
	}
	if err := os.WriteFile(entry.Path, content, 0644); err != nil {
		return fmt.Errorf("failed to write raster file %s: %w", entry.Path, err)
	}

	return nil
}
