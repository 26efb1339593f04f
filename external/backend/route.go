package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ruralplus/companion-api/schema"
)

var ErrNoRoute = fmt.Errorf("nenhuma rota retornada")

// TraceRoute asks the backend's Directions proxy for routes between two
// coordinates. Mode is one of driving, walking, bicycling or transit.
func (c *Client) TraceRoute(ctx context.Context, origin, destination schema.Location, mode string) ([]schema.Route, error) {
	if mode == "" {
		mode = "driving"
	}

	req := schema.DirectionsRequest{
		Origin:      fmt.Sprintf("%v,%v", origin.Latitude, origin.Longitude),
		Destination: fmt.Sprintf("%v,%v", destination.Latitude, destination.Longitude),
		Mode:        mode,
		Units:       "metric",
		Language:    "pt-BR",
	}

	var routes []schema.Route
	if err := c.do(ctx, http.MethodPost, "/rotas/", nil, "", req, &routes); err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}
	return routes, nil
}
