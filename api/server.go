package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ruralplus/companion-api/alert"
	"github.com/ruralplus/companion-api/external/backend"
	"github.com/ruralplus/companion-api/logmodule"
	"github.com/ruralplus/companion-api/navigation"
	"github.com/ruralplus/companion-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server exposes the companion API consumed by the UI shell.
type Server struct {
	// Server instance
	server *http.Server

	// Backend access
	client  *backend.Client
	session *backend.Session

	// Engines
	engine  *alert.Engine
	weather *alert.WeatherMonitor

	// Stores
	manager *store.Manager
	drafts  *store.PropertyStore

	// At most one navigation session at a time.
	navMu        sync.Mutex
	tracker      *navigation.Tracker
	trackerRoute *trackedRoute
	lastProgress *navigation.Progress
}

// NewServer new instance of server
func NewServer(
	client *backend.Client,
	session *backend.Session,
	engine *alert.Engine,
	weather *alert.WeatherMonitor,
	manager *store.Manager,
	drafts *store.PropertyStore) *Server {
	return &Server{
		client:  client,
		session: session,
		engine:  engine,
		weather: weather,
		manager: manager,
		drafts:  drafts,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	authRoute := apiRoute.Group("/auth")
	{
		authRoute.POST("/login", s.authLogin)
		authRoute.POST("/logout", s.authLogout)
		authRoute.POST("/register", s.authRegister)
		authRoute.GET("/me", s.authMe)
		authRoute.POST("/password/forgot", s.passwordForgot)
		authRoute.POST("/password/verify", s.passwordVerify)
		authRoute.POST("/password/reset", s.passwordReset)
	}

	apiRoute.POST("/location", s.updateLocation)

	alertRoute := apiRoute.Group("/alerts")
	{
		alertRoute.GET("/active", s.activeAlert)
		alertRoute.POST("/dismiss", s.dismissAlert)
		alertRoute.POST("/reset", s.resetAlerts)
	}

	occurrenceRoute := apiRoute.Group("/occurrences")
	{
		occurrenceRoute.GET("", s.listOccurrences)
		occurrenceRoute.POST("", s.reportOccurrence)
	}

	apiRoute.GET("/weather", s.checkWeather)

	propertyRoute := apiRoute.Group("/properties")
	{
		propertyRoute.GET("/:cpf", s.listProperties)
		propertyRoute.POST("/:cod/pluscode", s.createPlusCode)
		propertyRoute.PUT("/:cod/pluscode", s.updatePlusCode)
		propertyRoute.POST("/certificate", s.requestCertificate)
	}

	draftRoute := apiRoute.Group("/drafts")
	{
		draftRoute.GET("", s.listDrafts)
		draftRoute.POST("", s.addDraft)
		draftRoute.DELETE("/:id", s.removeDraft)
	}

	plusCodeRoute := apiRoute.Group("/pluscodes")
	{
		plusCodeRoute.GET("/search", s.searchPlusCodes)
		plusCodeRoute.POST("/sync", s.syncPlusCodes)
		plusCodeRoute.GET("/status", s.plusCodeStatus)
		plusCodeRoute.DELETE("/cache", s.clearPlusCodeCache)
	}

	navigationRoute := apiRoute.Group("/navigation")
	{
		navigationRoute.POST("/start", s.startNavigation)
		navigationRoute.GET("/progress", s.navigationProgress)
		navigationRoute.POST("/cancel", s.cancelNavigation)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "OK",
		"version":        viper.GetString("server.version"),
		"backend_online": s.client.Online(c.Request.Context()),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"backend":        viper.GetString("backend.endpoint"),
			"system_version": "RuralPlus Companion 0.1",
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	c.JSON(code, obj)
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}

// abortWithBackendError relays a backend rejection with its original status
// and message, or reports the backend unreachable for transport failures.
func abortWithBackendError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		abortWithEncoding(c, apiErr.Status, backendErrorJSON(apiErr), err)
		return
	}
	abortWithEncoding(c, http.StatusBadGateway, errorBackendUnreachable, err)
}
