package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tubenotes/artifacts"
	"tubenotes/pipeline"
	"tubenotes/types"
)

// VideoLookup resolves display metadata for a video
type VideoLookup interface {
	Lookup(ctx context.Context, id types.VideoID) (types.VideoInfo, error)
}

// ChannelFeed lists recent uploads of a channel
type ChannelFeed interface {
	Latest(ctx context.Context, channelID string, maxCount int) ([]types.FeedEntry, error)
}

// Deps wires the HTTP layer. Metadata and Feeds are optional.
type Deps struct {
	Runner         *pipeline.Runner
	Artifacts      artifacts.Store
	Metadata       VideoLookup
	Feeds          ChannelFeed
	Logger         *slog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type handlers struct {
	runner    *pipeline.Runner
	artifacts artifacts.Store
	metadata  VideoLookup
	feeds     ChannelFeed
	logger    *slog.Logger
	timeout   time.Duration
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.Use(CORS(deps.AllowedOrigins))

	h := &handlers{
		runner:    deps.Runner,
		artifacts: deps.Artifacts,
		metadata:  deps.Metadata,
		feeds:     deps.Feeds,
		logger:    logger,
		timeout:   deps.RequestTimeout,
	}
	RegisterHealthRoutes(r)
	RegisterOptionRoutes(r)
	RegisterVideoRoutes(r, h)
	RegisterSummaryRoutes(r, h)
	RegisterChannelRoutes(r, h)
	return r
}

// Server owns the HTTP listener
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

func NewServer(port string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background. A listener failure is sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	s.logger.Info("starting API server", slog.String("addr", s.httpServer.Addr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// withTimeout bounds a handler's outbound calls when a timeout is configured
func (h *handlers) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
