// Package roi derives a region of interest either from a center point with a
// buffer distance or from a GeoJSON feature.
package roi

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ROI is a geographic region of interest in WGS84 coordinates.
type ROI struct {
	center orb.Point
	bound  orb.Bound
}

// FromCenter buffers a WGS84 center point by the given distance in meters.
func FromCenter(lat, lon, bufferMeters float64) (ROI, error) {
	if lat < -90 || lat > 90 {
		return ROI{}, fmt.Errorf("latitude %f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return ROI{}, fmt.Errorf("longitude %f out of range", lon)
	}
	if bufferMeters <= 0 {
		return ROI{}, fmt.Errorf("buffer distance must be positive, got %f", bufferMeters)
	}

	center := orb.Point{lon, lat}
	return ROI{
		center: center,
		bound:  geo.NewBoundAroundPoint(center, bufferMeters),
	}, nil
}

// FromGeoJSONFeature loads a feature collection and selects the feature whose
// property idKey equals id. The ROI covers the feature's geometry, centered
// on its centroid.
func FromGeoJSONFeature(path, idKey, id string) (ROI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ROI{}, fmt.Errorf("failed to read GeoJSON file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return ROI{}, fmt.Errorf("failed to parse GeoJSON file %s: %w", path, err)
	}

	for _, feature := range fc.Features {
		value, ok := feature.Properties[idKey]
		if !ok || value != id {
			continue
		}

		centroid, area := planar.CentroidArea(feature.Geometry)
		if area <= 0 {
			return ROI{}, fmt.Errorf("feature %s=%s has a degenerate geometry", idKey, id)
		}
		return ROI{center: centroid, bound: feature.Geometry.Bound()}, nil
	}

	return ROI{}, fmt.Errorf("no feature with %s=%s found in %s", idKey, id, path)
}

func (r ROI) Center() orb.Point {
	return r.center
}

func (r ROI) Bound() orb.Bound {
	return r.bound
}

// CenterLatLon returns the center in latitude/longitude order.
func (r ROI) CenterLatLon() (float64, float64) {
	return r.center.Y(), r.center.X()
}
