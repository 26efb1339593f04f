package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// checkWeather classifies the weather around a coordinate. Repeated checks
// for the same area inside the throttle window come back empty unless
// force=true.
func (s *Server) checkWeather(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	force := c.Query("force") == "true"

	weatherAlert, err := s.weather.Check(c.Request.Context(), lat, lng, force)
	if err != nil {
		abortWithBackendError(c, err)
		return
	}

	if weatherAlert == nil {
		c.JSON(http.StatusOK, gin.H{"alert": nil, "throttled": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": weatherAlert, "throttled": false})
}
