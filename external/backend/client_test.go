package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/schema"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, time.Second)
	assert.NoError(t, err)
	return client, server
}

func TestDecodeErrorDetailString(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Localização não encontrada."})
	}))

	_, err := client.Weather(context.Background(), -23.5, -46.6)
	if assert.Error(t, err) {
		apiErr, ok := err.(*APIError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Localização não encontrada.", apiErr.Message)
	}
}

func TestDecodeErrorDetailArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "campo obrigatório"}, {"msg": "cpf inválido"}]}`))
	}))

	_, err := client.ListOccurrences(context.Background())
	if assert.Error(t, err) {
		assert.Equal(t, "campo obrigatório\ncpf inválido", err.Error())
	}
}

func TestDecodeErrorFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.ListOccurrences(context.Background())
	if assert.Error(t, err) {
		assert.Equal(t, "Erro 502", err.Error())
	}
}

func TestListOccurrences(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocorrencia/listar", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`[{"_id": "o1", "tipo": "acidente", "gravidade": "intensa",
			"coordinate": {"latitude": -23.5, "longitude": -46.6}}]`))
	}))

	occurrences, err := client.ListOccurrences(context.Background())
	assert.NoError(t, err)
	if assert.Len(t, occurrences, 1) {
		assert.Equal(t, "o1", occurrences[0].ID)
		assert.Equal(t, "acidente", occurrences[0].Type)
		assert.Equal(t, -23.5, occurrences[0].Coordinate.Latitude)
	}
}

func TestRegisterOccurrencePayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocorrencia/adicionar", r.URL.Path)

		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		occ := payload["ocorrencia"].(map[string]interface{})
		assert.Equal(t, "acidente", occ["tipo"], "type must be lowercased")
		assert.Equal(t, "intensa", occ["gravidade"])
		assert.NotEmpty(t, payload["data_registro"])
		assert.NotNil(t, payload["user_coordinate"])
		assert.Equal(t, []interface{}{}, payload["area"])

		json.NewEncoder(w).Encode(OccurrenceResponse{Status: "ok", ID: "o2"})
	}))

	resp, err := client.RegisterOccurrence(context.Background(), "Acidente", "INTENSA",
		schema.Location{Latitude: -23.5, Longitude: -46.6},
		schema.Location{Latitude: -23.6, Longitude: -46.7})
	assert.NoError(t, err)
	assert.Equal(t, "o2", resp.ID)
}

func TestPlusCodeWireField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/area_imovel/properties/SP-123/pluscode", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		var payload map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		// the misspelled field is the backend contract
		_, hasCordinates := payload["cordinates"]
		assert.True(t, hasCordinates)
		_, hasCoordinates := payload["coordinates"]
		assert.False(t, hasCoordinates)

		w.Write([]byte(`{"pluscode_cod": "589R3F2M+2X", "cordinates": {"latitude": -23.5, "longitude": -46.6}}`))
	}))

	saved, err := client.UpdatePlusCode(context.Background(), "SP-123", schema.PlusCodeRequest{
		Coordinates:    schema.Location{Latitude: -23.5, Longitude: -46.6},
		Code:           "589R3F2M+2X",
		ValidationDate: time.Now().UTC().Format(time.RFC3339),
	})
	assert.NoError(t, err)
	assert.Equal(t, "589R3F2M+2X", saved.Code)
	assert.Equal(t, -23.5, saved.Coordinates.Latitude)
}

func TestWeatherQueryParams(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "-23.5505", r.URL.Query().Get("lat"))
		assert.Equal(t, "-46.6333", r.URL.Query().Get("lng"))
		w.Write([]byte(`{"name": "São Paulo", "weather": [{"main": "Clear", "description": "céu limpo"}],
			"main": {"temp": 25}, "wind": {"speed": 3}}`))
	}))

	weather, err := client.Weather(context.Background(), -23.5505, -46.6333)
	assert.NoError(t, err)
	assert.Equal(t, "São Paulo", weather.Name)
	assert.Equal(t, 25.0, weather.Main.Temp)
}

func TestTraceRoute(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rotas/", r.URL.Path)

		var req schema.DirectionsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "-23.5505,-46.6333", req.Origin)
		assert.Equal(t, "driving", req.Mode)
		assert.Equal(t, "metric", req.Units)
		assert.Equal(t, "pt-BR", req.Language)

		w.Write([]byte(`[{"summary": "SP-300", "overview_polyline": {"points": "abc"},
			"legs": [{"steps": [{"end_location": {"lat": -23.0, "lng": -46.0},
			"distance": {"text": "1 km", "value": 1000}, "duration": {"text": "2 min", "value": 120},
			"html_instructions": "Siga em frente"}]}]}]`))
	}))

	routes, err := client.TraceRoute(context.Background(),
		schema.Location{Latitude: -23.5505, Longitude: -46.6333},
		schema.Location{Latitude: -23.0, Longitude: -46.0}, "")
	assert.NoError(t, err)
	if assert.Len(t, routes, 1) {
		assert.Len(t, routes[0].Steps(), 1)
	}
}

func TestTraceRouteEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, err := client.TraceRoute(context.Background(), schema.Location{}, schema.Location{}, "driving")
	assert.Equal(t, ErrNoRoute, err)
}

func TestOnline(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound) // any response means reachable
	}))
	assert.True(t, client.Online(context.Background()))

	unreachable, err := New("http://127.0.0.1:1", time.Second)
	assert.NoError(t, err)
	assert.False(t, unreachable.Online(context.Background()))
}
