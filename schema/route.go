package schema

// Route payloads follow the Google Directions shape the backend proxies.

type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location converts the Directions lat/lng pair into the shared Location type.
func (l LatLng) Location() Location {
	return Location{Latitude: l.Lat, Longitude: l.Lng}
}

type RouteStep struct {
	EndLocation      LatLng    `json:"end_location"`
	StartLocation    LatLng    `json:"start_location"`
	Distance         TextValue `json:"distance"`
	Duration         TextValue `json:"duration"`
	HTMLInstructions string    `json:"html_instructions"`
	Maneuver         string    `json:"maneuver,omitempty"`
}

type RouteLeg struct {
	Distance TextValue   `json:"distance"`
	Duration TextValue   `json:"duration"`
	Steps    []RouteStep `json:"steps"`
}

type RoutePolyline struct {
	Points string `json:"points"`
}

type Route struct {
	Summary          string        `json:"summary"`
	Legs             []RouteLeg    `json:"legs"`
	OverviewPolyline RoutePolyline `json:"overview_polyline"`
}

// Steps flattens the steps of every leg in order.
func (r Route) Steps() []RouteStep {
	var steps []RouteStep
	for _, leg := range r.Legs {
		steps = append(steps, leg.Steps...)
	}
	return steps
}

// DirectionsRequest is the payload of the backend's POST /rotas/ endpoint.
type DirectionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
	Units       string `json:"units"`
	Language    string `json:"language"`
}
