package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jurimetrics/internal/logging"
)

// Server hosts the analytics HTTP API.
type Server struct {
	router   *gin.Engine
	handlers *Handlers
	log      *logging.Logger
	srv      *http.Server
}

// NewServer builds the router with all routes registered.
func NewServer(handlers *Handlers, log *logging.Logger, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	s := &Server{
		router:   router,
		handlers: handlers,
		log:      log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handlers.Health)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/judges/:id/report", s.handlers.GenerateReport)
		v1.GET("/judges/:id/report/export", s.handlers.ExportReport)
		v1.GET("/judges/:id/analytics", s.handlers.AugmentedAnalytics)
		v1.GET("/baselines/:scope/:id", s.handlers.GetBaseline)
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(port string) error {
	s.srv = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("analytics API listening on :%s", port)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
