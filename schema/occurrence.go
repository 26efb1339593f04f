package schema

import "fmt"

// Severity values reported by the backend. The enum is open; unknown values
// fall back to SeverityColorDefault for display.
const (
	SeverityLight    = "leve"
	SeverityModerate = "moderada"
	SeverityIntense  = "intensa"
)

const (
	SeverityColorLight    = "#FFC107"
	SeverityColorModerate = "#FF9800"
	SeverityColorIntense  = "#F44336"
	SeverityColorDefault  = "#9E9E9E"
)

// Occurrence is a road hazard record reported by users and fetched read-only
// from the backend. Field names follow the backend wire contract.
type Occurrence struct {
	ID           string   `json:"_id,omitempty"`
	Type         string   `json:"tipo"`
	Severity     string   `json:"gravidade"`
	Coordinate   Location `json:"coordinate"`
	Area         []any    `json:"area,omitempty"`
	RegisteredAt string   `json:"data_registro,omitempty"`
}

// Key returns the identity used for alert deduplication: the server id when
// present, otherwise a string derived from the coordinate and the record's
// index in the current fetch batch. The derived form is not stable across
// fetches if the backend reorders its array.
func (o Occurrence) Key(index int) string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("%v-%v-%d", o.Coordinate.Latitude, o.Coordinate.Longitude, index)
}

// SeverityColor maps a severity value to its display color.
func SeverityColor(severity string) string {
	switch severity {
	case SeverityLight:
		return SeverityColorLight
	case SeverityModerate:
		return SeverityColorModerate
	case SeverityIntense:
		return SeverityColorIntense
	default:
		return SeverityColorDefault
	}
}
