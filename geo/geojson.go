package geo

import (
	"fmt"

	"github.com/ruralplus/companion-api/schema"
)

var ErrEmptyGeometry = fmt.Errorf("geometry has no coordinates")

// PolygonCenter returns the arithmetic centroid of a ring of [lon, lat]
// pairs, matching how the map screen centers a property parcel.
func PolygonCenter(ring [][]float64) (schema.Location, error) {
	if len(ring) == 0 {
		return schema.Location{}, ErrEmptyGeometry
	}

	var lon, lat float64
	for _, point := range ring {
		if len(point) < 2 {
			return schema.Location{}, fmt.Errorf("malformed ring point with %d values", len(point))
		}
		lon += point[0]
		lat += point[1]
	}

	n := float64(len(ring))
	return schema.Location{Latitude: lat / n, Longitude: lon / n}, nil
}

// FeatureCenter returns the centroid of a property feature's outer ring.
func FeatureCenter(feature schema.PropertyFeature) (schema.Location, error) {
	return PolygonCenter(feature.Geometry.OuterRing())
}
