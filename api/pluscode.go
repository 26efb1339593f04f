package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) searchPlusCodes(c *gin.Context) {
	results, err := s.manager.Search(c.Request.Context(), c.Query("q"))
	if shouldInterupt(err, c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) syncPlusCodes(c *gin.Context) {
	force := c.Query("force") == "true"

	synced, err := s.manager.Sync(c.Request.Context(), force)
	if shouldInterupt(err, c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": synced})
}

func (s *Server) plusCodeStatus(c *gin.Context) {
	status, err := s.manager.Status(c.Request.Context())
	if shouldInterupt(err, c) {
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) clearPlusCodeCache(c *gin.Context) {
	if err := s.manager.ClearCache(c.Request.Context()); shouldInterupt(err, c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
