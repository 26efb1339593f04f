package schema

import (
	"encoding/json"
	"fmt"
)

// Geometry is a tagged variant of the GeoJSON geometries the property
// registry returns. Only Polygon and MultiPolygon occur in practice.
type Geometry struct {
	Type         string
	Polygon      [][][]float64   // set when Type == "Polygon"
	MultiPolygon [][][][]float64 // set when Type == "MultiPolygon"
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var head struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	g.Type = head.Type
	switch head.Type {
	case "Polygon":
		return json.Unmarshal(head.Coordinates, &g.Polygon)
	case "MultiPolygon":
		return json.Unmarshal(head.Coordinates, &g.MultiPolygon)
	default:
		return fmt.Errorf("unsupported geometry type %q", head.Type)
	}
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch g.Type {
	case "Polygon":
		return json.Marshal(map[string]any{"type": g.Type, "coordinates": g.Polygon})
	case "MultiPolygon":
		return json.Marshal(map[string]any{"type": g.Type, "coordinates": g.MultiPolygon})
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

// OuterRing returns the first exterior ring of the geometry, regardless of
// the variant. Returns nil when the geometry carries no coordinates.
func (g Geometry) OuterRing() [][]float64 {
	switch g.Type {
	case "Polygon":
		if len(g.Polygon) > 0 {
			return g.Polygon[0]
		}
	case "MultiPolygon":
		if len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0 {
			return g.MultiPolygon[0][0]
		}
	}
	return nil
}

// PropertyAttributes are the registry attributes of a rural property parcel.
type PropertyAttributes struct {
	PropertyCode string  `json:"cod_imovel"`
	StateCode    string  `json:"cod_estado"`
	Municipality string  `json:"municipio"`
	AreaM2       float64 `json:"num_area"`
}

// PropertyFeature is one GeoJSON-like feature from the property registry,
// optionally carrying an already registered Plus Code.
type PropertyFeature struct {
	ID         string             `json:"id,omitempty"`
	Type       string             `json:"type"`
	Geometry   Geometry           `json:"geometry"`
	Properties PropertyAttributes `json:"properties"`
	PlusCode   *PlusCode          `json:"pluscode,omitempty"`
}
