package navigation

import (
	"googlemaps.github.io/maps"

	"github.com/ruralplus/companion-api/schema"
)

// DecodeOverview decodes a route's encoded overview polyline into the
// coordinate path drawn on the map.
func DecodeOverview(route schema.Route) []schema.Location {
	points, _ := maps.DecodePolyline(route.OverviewPolyline.Points)

	path := make([]schema.Location, 0, len(points))
	for _, p := range points {
		path = append(path, schema.Location{Latitude: p.Lat, Longitude: p.Lng})
	}
	return path
}
