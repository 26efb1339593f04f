package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ruralplus/companion-api/schema"
)

// OccurrenceResponse acknowledges a registered occurrence.
type OccurrenceResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ListOccurrences fetches all active hazard records.
func (c *Client) ListOccurrences(ctx context.Context) ([]schema.Occurrence, error) {
	var occurrences []schema.Occurrence
	if err := c.do(ctx, http.MethodGet, "/ocorrencia/listar", nil, "", nil, &occurrences); err != nil {
		return nil, err
	}
	return occurrences, nil
}

// RegisterOccurrence reports a new hazard at a coordinate, along with the
// reporter's own position.
func (c *Client) RegisterOccurrence(ctx context.Context, kind, severity string, coordinate, userCoordinate schema.Location) (*OccurrenceResponse, error) {
	payload := map[string]interface{}{
		"ocorrencia": map[string]interface{}{
			"tipo":       strings.ToLower(kind),
			"gravidade":  strings.ToLower(severity),
			"coordinate": coordinate,
		},
		"area":            []interface{}{},
		"data_registro":   time.Now().UTC().Format(time.RFC3339),
		"user_coordinate": userCoordinate,
	}

	var resp OccurrenceResponse
	if err := c.do(ctx, http.MethodPost, "/ocorrencia/adicionar", nil, "", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
