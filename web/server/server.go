package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Ritik-Gupta8/Optical-Labs/internal/middleware"
	"github.com/Ritik-Gupta8/Optical-Labs/internal/version"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/core"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/spectral"
	"github.com/Ritik-Gupta8/Optical-Labs/pkg/tracer"
)

// Server handles web requests for the optical simulation service
type Server struct {
	router  *gin.Engine
	tracer  *tracer.Tracer
	sweeper *spectral.Sweeper
	metrics *simMetrics
	port    int
	started time.Time
}

// Config contains the configuration for the simulation server
type Config struct {
	Port    int            // HTTP port, 8000 when unset
	Tracer  tracer.Config  // trace limits, defaults filled by the tracer
	Model   spectral.Model // detection model, defaults when zero
	Workers int            // sweep workers, one per CPU when 0
	Logger  core.Logger    // sweep progress logger, stderr when nil
}

// NewServer creates a new simulation server
func NewServer(config Config) *Server {
	if config.Port == 0 {
		config.Port = 8000
	}
	if config.Model.UnitScaleNm <= 0 {
		config.Model = spectral.DefaultModel()
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.NewRequestLogger().Handler())
	router.Use(otelgin.Middleware("optical_api"))

	promMw := middleware.NewPrometheusMiddleware("optical_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &Server{
		router:  router,
		tracer:  tracer.New(config.Tracer),
		sweeper: spectral.NewSweeper(config.Model, config.Workers, config.Logger),
		metrics: newSimMetrics("optical_api"),
		port:    config.Port,
		started: time.Now(),
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	// Browser clients call the simulation endpoints directly, so answer
	// preflight and allow any origin
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.router.POST("/simulate_path", s.handleSimulatePath)
	s.router.POST("/simulate_sweep", s.handleSimulateSweep)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/status", s.handleStatus)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":    "optical-labs",
		"version":    version.Version,
		"commit":     version.GitCommit,
		"build_time": version.BuildTime,
		"uptime_s":   int64(time.Since(s.started).Seconds()),
	})
}

// Start runs the HTTP server until it fails or is interrupted
func (s *Server) Start() error {
	fmt.Printf("Starting optical simulation server at http://localhost:%d\n", s.port)
	return s.router.Run(fmt.Sprintf(":%d", s.port))
}
