package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruralplus/companion-api/schema"
)

type reportOccurrenceRequest struct {
	Type           string           `json:"tipo" binding:"required"`
	Severity       string           `json:"gravidade" binding:"required"`
	Coordinate     *schema.Location `json:"coordinate" binding:"required"`
	UserCoordinate *schema.Location `json:"user_coordinate"`
}

type occurrenceView struct {
	schema.Occurrence
	Color string `json:"color"`
}

func (s *Server) listOccurrences(c *gin.Context) {
	occurrences, err := s.client.ListOccurrences(c.Request.Context())
	if err != nil {
		abortWithBackendError(c, err)
		return
	}

	views := make([]occurrenceView, 0, len(occurrences))
	for _, o := range occurrences {
		views = append(views, occurrenceView{
			Occurrence: o,
			Color:      schema.SeverityColor(o.Severity),
		})
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": views})
}

func (s *Server) reportOccurrence(c *gin.Context) {
	var body reportOccurrenceRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	userCoordinate := *body.Coordinate
	if body.UserCoordinate != nil {
		userCoordinate = *body.UserCoordinate
	}

	resp, err := s.client.RegisterOccurrence(c.Request.Context(),
		body.Type, body.Severity, *body.Coordinate, userCoordinate)
	if err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
