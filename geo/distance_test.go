package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

var (
	saoPaulo = schema.Location{Latitude: -23.5505, Longitude: -46.6333}
	nearby   = schema.Location{Latitude: -23.5506, Longitude: -46.6334}
	faraway  = schema.Location{Latitude: -23.6000, Longitude: -46.7000}
)

func TestDistanceZero(t *testing.T) {
	assert.Equal(t, float64(0), Distance(saoPaulo, saoPaulo))
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]schema.Location{
		{saoPaulo, nearby},
		{saoPaulo, faraway},
		{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 180}},
		{{Latitude: -90, Longitude: 0}, {Latitude: 90, Longitude: 0}},
	}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// one block away in São Paulo
	d := Distance(saoPaulo, nearby)
	assert.InDelta(t, 15, d, 3)

	// across the city
	d = Distance(saoPaulo, faraway)
	assert.True(t, d > 7000 && d < 10000, "expected ~8-9km, got %f", d)

	// quarter of the Earth's circumference
	d = Distance(schema.Location{}, schema.Location{Latitude: 0, Longitude: 90})
	assert.InDelta(t, 10007543, d, 10000)
}
