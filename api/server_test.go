package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ruralplus/companion-api/alert"
	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer wires a Server against a stub backend. The stub doubles as
// the reachability probe, so handlers see the backend as online.
func newTestServer(t *testing.T, stub *httptest.Server) (*Server, *gin.Engine) {
	client, err := backend.New(stub.URL, time.Second)
	assert.NoError(t, err)

	s := NewServer(
		client,
		backend.NewSession(client),
		alert.NewEngine(),
		alert.NewWeatherMonitor(client),
		store.NewManager(store.NewMemoryStore(), client, client),
		store.NewPropertyStore(),
	)
	return s, s.setupRouter()
}
