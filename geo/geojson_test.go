package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

func TestPolygonCenter(t *testing.T) {
	ring := [][]float64{
		{-46.0, -23.0},
		{-46.2, -23.0},
		{-46.2, -23.2},
		{-46.0, -23.2},
	}

	center, err := PolygonCenter(ring)
	assert.NoError(t, err)
	assert.InDelta(t, -23.1, center.Latitude, 1e-9)
	assert.InDelta(t, -46.1, center.Longitude, 1e-9)
}

func TestPolygonCenterEmpty(t *testing.T) {
	_, err := PolygonCenter(nil)
	assert.Equal(t, ErrEmptyGeometry, err)
}

func TestFeatureCenterMultiPolygon(t *testing.T) {
	raw := `{
		"type": "Feature",
		"geometry": {
			"type": "MultiPolygon",
			"coordinates": [[[[-46.0, -23.0], [-46.2, -23.0], [-46.2, -23.2], [-46.0, -23.2]]]]
		},
		"properties": {"cod_imovel": "SP-123", "municipio": "Itu", "cod_estado": "SP", "num_area": 42000}
	}`

	var feature schema.PropertyFeature
	assert.NoError(t, json.Unmarshal([]byte(raw), &feature))
	assert.Equal(t, "MultiPolygon", feature.Geometry.Type)

	center, err := FeatureCenter(feature)
	assert.NoError(t, err)
	assert.InDelta(t, -23.1, center.Latitude, 1e-9)
	assert.InDelta(t, -46.1, center.Longitude, 1e-9)
}

func TestGeometryRejectsUnknownType(t *testing.T) {
	var g schema.Geometry
	err := json.Unmarshal([]byte(`{"type": "Point", "coordinates": [1, 2]}`), &g)
	assert.Error(t, err)
}
