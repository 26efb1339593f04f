package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	olc "github.com/google/open-location-code/go"
	"github.com/google/uuid"

	"github.com/ruralplus/companion-api/geo"
	"github.com/ruralplus/companion-api/schema"
	"github.com/ruralplus/companion-api/store"
)

// plusCodeLength is the standard full-precision code length (~14m cell),
// matching the codes already registered on the platform.
const plusCodeLength = 10

type plusCodeUpsertRequest struct {
	Feature    schema.PropertyFeature `json:"feature" binding:"required"`
	Surname    string                 `json:"surname"`
	OwnerEmail string                 `json:"owner_email" binding:"required,email"`
}

func (s *Server) listProperties(c *gin.Context) {
	cpf := c.Param("cpf")
	if !ValidCPF(cpf) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	features, err := s.client.Properties(c.Request.Context(), cpf)
	if err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"features": features})
}

func (s *Server) createPlusCode(c *gin.Context) {
	s.upsertPlusCode(c, false)
}

func (s *Server) updatePlusCode(c *gin.Context) {
	s.upsertPlusCode(c, true)
}

// upsertPlusCode derives the Plus Code from the property's geometric center
// and registers it on the backend under the property code.
func (s *Server) upsertPlusCode(c *gin.Context, update bool) {
	propertyCode := c.Param("cod")

	var body plusCodeUpsertRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	center, err := geo.FeatureCenter(body.Feature)
	if err != nil {
		abortWithEncoding(c, http.StatusUnprocessableEntity, errorEmptyGeometry, err)
		return
	}

	req := schema.PlusCodeRequest{
		Coordinates:    center,
		Surname:        body.Surname,
		OwnerEmail:     body.OwnerEmail,
		Code:           olc.Encode(center.Latitude, center.Longitude, plusCodeLength),
		ValidationDate: time.Now().UTC().Format(time.RFC3339),
	}

	var code *schema.PlusCode
	if update {
		code, err = s.client.UpdatePlusCode(c.Request.Context(), propertyCode, req)
	} else {
		code, err = s.client.CreatePlusCode(c.Request.Context(), propertyCode, req)
	}
	if err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (s *Server) requestCertificate(c *gin.Context) {
	var body schema.CertificateRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if err := s.client.RequestCertificate(c.Request.Context(), body); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

type draftRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

func (s *Server) listDrafts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"drafts": s.drafts.All()})
}

func (s *Server) addDraft(c *gin.Context) {
	var body draftRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	draft := store.DraftProperty{
		ID:      uuid.New().String(),
		Name:    body.Name,
		Address: body.Address,
		Location: schema.Location{
			Latitude:  *body.Latitude,
			Longitude: *body.Longitude,
		},
	}
	s.drafts.Add(draft)
	c.JSON(http.StatusOK, draft)
}

func (s *Server) removeDraft(c *gin.Context) {
	s.drafts.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
