package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitcoach/internal/catalog"
	"fitcoach/internal/logging"
	"fitcoach/internal/playlist"
)

// Server handles HTTP requests for playlist builds.
type Server struct {
	builder *playlist.Builder
	metrics *playlist.Metrics
	token   string
	logger  *slog.Logger
}

// NewServer wires the engine into an HTTP handler. An empty token disables
// authentication.
func NewServer(builder *playlist.Builder, metrics *playlist.Metrics, token string, logger *slog.Logger) *Server {
	return &Server{
		builder: builder,
		metrics: metrics,
		token:   strings.TrimSpace(token),
		logger:  logging.NewComponentLogger(logger, "api"),
	}
}

// Router constructs the gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	if s.token != "" {
		v1.Use(s.requireToken())
	}
	v1.POST("/playlist", s.handleBuildPlaylist)
	v1.GET("/stats", s.handleStats)

	return r
}

// BuildRequest is the playlist build payload.
type BuildRequest struct {
	Workout   catalog.Workout `json:"workout"`
	Archetype string          `json:"archetype"`
}

// BuildResponse is the ordered playlist produced for one request.
type BuildResponse struct {
	Items []playlist.Item `json:"items"`
	Count int             `json:"count"`
}

func (s *Server) handleBuildPlaylist(c *gin.Context) {
	var req BuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	archetype, err := catalog.ParseArchetype(req.Archetype)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Workout.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := s.builder.Build(c.Request.Context(), req.Workout, archetype)
	if err != nil {
		s.logger.Error("playlist build failed",
			logging.String("workout", req.Workout.ID.String()),
			logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "playlist build failed"})
		return
	}
	if items == nil {
		items = []playlist.Item{}
	}
	c.JSON(http.StatusOK, BuildResponse{Items: items, Count: len(items)})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "Bearer "+s.token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing bearer token"})
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		c.Next()
		s.logger.Info("request",
			logging.String("request_id", requestID),
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()),
			logging.Duration("elapsed", time.Since(start)))
	}
}
