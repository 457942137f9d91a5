// Package server is the bundled debate directory API, a stand-in for a
// shared deployment so the client is usable out of the box. It serves the
// same routes and wire shapes the directory client consumes.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/logging"
)

// Server hosts the debates REST API.
type Server struct {
	engine *gin.Engine
	store  *memoryStore
	logger *logging.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		s.logger = logger.WithComponent("server")
	}
}

// WithSeed preloads the store with the demo directory.
func WithSeed() Option {
	return func(s *Server) {
		s.store.seed()
	}
}

// New builds a server with its routes registered.
func New(opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		store:  newMemoryStore(),
		logger: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(corsMiddleware())

	api := s.engine.Group("/api")
	{
		api.GET("/debates", s.listDebates)
		api.POST("/debates", s.createDebate)
		api.GET("/debates/:id", s.getDebate)
		api.DELETE("/debates/:id", s.deleteDebate)
	}

	return s
}

// corsMiddleware allows browser clients on the usual local dev origins.
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("directory server listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) listDebates(c *gin.Context) {
	debates := s.store.list()
	s.logger.Debug("listed debates", "count", len(debates))
	c.JSON(http.StatusOK, debates)
}

func (s *Server) getDebate(c *gin.Context) {
	id := c.Param("id")
	d, ok := s.store.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "debate not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// createDebateRequest matches the body the directory client sends.
type createDebateRequest struct {
	Title       string `json:"title"`
	OwnerID     string `json:"ownerId"`
	OwnerName   string `json:"ownerName"`
	OwnerAge    *int   `json:"ownerAge"`
	OwnerGender string `json:"ownerGender"`
}

func (s *Server) createDebate(c *gin.Context) {
	var req createDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}
	if len([]rune(title)) > directory.MaxTitleLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title too long"})
		return
	}

	created := s.store.create(title, req.OwnerID, req.OwnerName, req.OwnerAge, req.OwnerGender)
	s.logger.Info("debate created", "debate_id", created.ID, "title", created.Title)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteDebate(c *gin.Context) {
	id := c.Param("id")
	if !s.store.remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "debate not found"})
		return
	}
	s.logger.Info("debate deleted", "debate_id", id)
	c.Status(http.StatusNoContent)
}
