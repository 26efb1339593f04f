package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralplus/companion-api/schema"
)

type locationUpdate struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

// updateLocation ingests one GPS fix from the UI shell. The fix drives the
// proximity engine and, when a navigation session is active, the route
// tracker; both outcomes come back in a single response.
func (s *Server) updateLocation(c *gin.Context) {
	var body locationUpdate
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	loc := schema.Location{Latitude: *body.Latitude, Longitude: *body.Longitude}
	s.engine.UpdateLocation(loc)

	resp := gin.H{
		"alert":  s.engine.ActiveAlert(),
		"nearby": s.engine.Nearby(),
	}

	s.navMu.Lock()
	if s.tracker != nil {
		progress := s.tracker.Update(loc)
		s.lastProgress = &progress
		resp["navigation"] = progress
	}
	s.navMu.Unlock()

	c.JSON(http.StatusOK, resp)
}

func (s *Server) activeAlert(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alert": s.engine.ActiveAlert()})
}

func (s *Server) dismissAlert(c *gin.Context) {
	s.engine.Dismiss()
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) resetAlerts(c *gin.Context) {
	s.engine.Reset()
	s.weather.ResetThrottle()
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
