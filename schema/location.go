package schema

// Location is a WGS84 coordinate. Ranges are not enforced here; the API
// layer validates user-supplied values.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
