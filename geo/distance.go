package geo

import (
	"math"

	"github.com/ruralplus/companion-api/schema"
)

// earthRadius in meters.
const earthRadius = 6371000

// Distance returns the great-circle distance in meters between two
// coordinates, using the Haversine formula. It does not validate ranges and
// always returns a finite value for finite inputs.
func Distance(a, b schema.Location) float64 {
	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	deltaPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}
