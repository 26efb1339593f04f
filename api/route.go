package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/navigation"
	"github.com/ruralplus/companion-api/schema"
)

type startNavigationRequest struct {
	Origin      schema.Location `json:"origin" binding:"required"`
	Destination schema.Location `json:"destination" binding:"required"`
	Mode        string          `json:"mode"`
}

// trackedRoute is the static route data returned alongside live progress.
type trackedRoute struct {
	SessionID string            `json:"session_id"`
	Summary   string            `json:"summary"`
	Overview  []schema.Location `json:"overview"`
	Steps     []routeStepView   `json:"steps"`
}

type routeStepView struct {
	Instruction string           `json:"instruction"`
	Maneuver    string           `json:"maneuver,omitempty"`
	Distance    schema.TextValue `json:"distance"`
	Duration    schema.TextValue `json:"duration"`
	EndLocation schema.Location  `json:"end_location"`
}

// startNavigation traces a route through the backend and opens a tracking
// session for it. Starting a new session replaces any previous one.
func (s *Server) startNavigation(c *gin.Context) {
	var body startNavigationRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	routes, err := s.client.TraceRoute(c.Request.Context(), body.Origin, body.Destination, body.Mode)
	if err != nil {
		if err == backend.ErrNoRoute {
			abortWithEncoding(c, http.StatusNotFound, errorNoRoute, err)
			return
		}
		abortWithBackendError(c, err)
		return
	}

	route := routes[0]
	tracker, err := navigation.NewTracker(route)
	if err != nil {
		abortWithEncoding(c, http.StatusUnprocessableEntity, errorNoRoute, err)
		return
	}

	steps := route.Steps()
	views := make([]routeStepView, 0, len(steps))
	for _, step := range steps {
		views = append(views, routeStepView{
			Instruction: navigation.CleanInstruction(step.HTMLInstructions),
			Maneuver:    step.Maneuver,
			Distance:    step.Distance,
			Duration:    step.Duration,
			EndLocation: step.EndLocation.Location(),
		})
	}

	tracked := &trackedRoute{
		SessionID: tracker.ID(),
		Summary:   route.Summary,
		Overview:  navigation.DecodeOverview(route),
		Steps:     views,
	}

	s.navMu.Lock()
	s.tracker = tracker
	s.trackerRoute = tracked
	s.lastProgress = nil
	s.navMu.Unlock()

	c.JSON(http.StatusOK, gin.H{"route": tracked})
}

// navigationProgress returns the route and the progress computed from the
// last location fix.
func (s *Server) navigationProgress(c *gin.Context) {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	if s.tracker == nil {
		abortWithEncoding(c, http.StatusNotFound, errorNoNavigationSession)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route":    s.trackerRoute,
		"progress": s.lastProgress,
	})
}

func (s *Server) cancelNavigation(c *gin.Context) {
	s.navMu.Lock()
	s.tracker = nil
	s.trackerRoute = nil
	s.lastProgress = nil
	s.navMu.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
