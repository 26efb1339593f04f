package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ruralplus/companion-api/schema"
)

// Weather fetches current conditions for a coordinate through the backend's
// weather proxy.
func (c *Client) Weather(ctx context.Context, lat, lng float64) (*schema.Weather, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	var weather schema.Weather
	if err := c.do(ctx, http.MethodGet, "/weather", query, "", nil, &weather); err != nil {
		return nil, err
	}
	return &weather, nil
}
