package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/schema"
)

func (s *Server) authLogin(c *gin.Context) {
	var body schema.LoginRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	user, err := s.session.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		abortWithBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"expires_at": s.sessionExpiry(),
	})
}

func (s *Server) authLogout(c *gin.Context) {
	if err := s.session.Logout(c.Request.Context()); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) authMe(c *gin.Context) {
	user, err := s.session.Me(c.Request.Context())
	if err != nil {
		if err == backend.ErrNotAuthenticated {
			abortWithEncoding(c, http.StatusUnauthorized, errorNotAuthenticated, err)
			return
		}
		abortWithBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"expires_at": s.sessionExpiry(),
	})
}

func (s *Server) authRegister(c *gin.Context) {
	var body schema.RegisterRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := s.client.Register(c.Request.Context(), body); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) passwordForgot(c *gin.Context) {
	var body schema.PasswordForgotRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := s.client.PasswordForgot(c.Request.Context(), body.Email); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) passwordVerify(c *gin.Context) {
	var body schema.PasswordVerifyRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := s.client.PasswordVerify(c.Request.Context(), body.Email, body.Code); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) passwordReset(c *gin.Context) {
	var body schema.PasswordResetRequest
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if err := s.client.PasswordReset(c.Request.Context(), body.Email, body.Code, body.NewPassword); err != nil {
		abortWithBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// sessionExpiry returns the access token expiry as RFC3339, or empty when
// the token carries no expiry claim.
func (s *Server) sessionExpiry() string {
	if expiresAt, ok := s.session.ExpiresAt(); ok {
		return expiresAt.UTC().Format(time.RFC3339)
	}
	return ""
}
