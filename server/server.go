package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server serves scores, the leaderboard and session histories
type Server struct {
	store  Store
	router *gin.Engine
	logger *slog.Logger
}

// New creates the HTTP server. Pass gin.ReleaseMode or gin.TestMode to quiet
// the router.
func New(store Store, logger *slog.Logger, mode string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if mode == "" {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		store:  store,
		router: router,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogger(), cors())

	s.router.GET("/health", s.healthCheck)
	s.router.POST("/users", s.registerUser)
	s.router.POST("/score", s.submitScore)
	s.router.GET("/leaderboard", s.leaderboard)
	s.router.GET("/history/:id", s.history)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("Request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
