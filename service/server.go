package service

import (
	"fmt"
	"math"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/errs"
	"github.com/tweedegolf/bag-address-lookup/internal/options"
	"github.com/tweedegolf/bag-address-lookup/suggest"
)

type config struct {
	logger    *zap.Logger
	quiet     bool
	threshold float64
	limit     int
}

func defaultConfig() *config {
	return &config{
		logger:    zap.NewNop(),
		threshold: suggest.DefaultThreshold,
		limit:     suggest.DefaultLimit,
	}
}

// Option represents a functional option for configuring the server.
type Option = options.Option[*config]

// WithLogger sets the logger used for request logging and panic recovery.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithQuiet disables per-request logging. Panic recovery stays enabled.
func WithQuiet(quiet bool) Option {
	return options.NoError(func(c *config) {
		c.quiet = quiet
	})
}

// WithSuggestThreshold sets the minimum similarity score for fuzzy locality
// suggestions. The threshold must be finite and not negative; scores never
// exceed 1, so a threshold above 1 disables the fuzzy phase.
func WithSuggestThreshold(threshold float64) Option {
	return options.New(func(c *config) error {
		if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			return fmt.Errorf("%w: %v", errs.ErrInvalidThreshold, threshold)
		}
		c.threshold = threshold

		return nil
	})
}

// WithSuggestLimit caps the number of locality suggestions per response.
// Zero or negative means no cap.
func WithSuggestLimit(limit int) Option {
	return options.NoError(func(c *config) {
		c.limit = limit
	})
}

// Server answers address lookup and locality suggestion queries over HTTP.
type Server struct {
	router      *gin.Engine
	src         database.Source
	logger      *zap.Logger
	suggestOpts []suggest.Option
}

// New creates a Server backed by src. The database may be in either query
// mode; the server only uses the Source interface.
//
// Parameters:
//   - src: the address database to serve
//   - opts: optional configuration (see WithLogger, WithQuiet,
//     WithSuggestThreshold, WithSuggestLimit)
//
// Returns:
//   - *Server: the configured server; serve it via Router.
//   - error: errs.ErrEmptyDatabase when src holds no address ranges, or
//     the error of an invalid option.
func New(src database.Source, opts ...Option) (*Server, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if src.Empty() {
		return nil, fmt.Errorf("%w: refusing to serve", errs.ErrEmptyDatabase)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if !cfg.quiet {
		router.Use(ginzap.Ginzap(cfg.logger, time.RFC3339, true))
	}
	router.Use(ginzap.RecoveryWithZap(cfg.logger, true))
	router.Use(observeRequests())

	s := &Server{
		router: router,
		src:    src,
		logger: cfg.logger,
		suggestOpts: []suggest.Option{
			suggest.WithThreshold(cfg.threshold),
			suggest.WithLimit(cfg.limit),
		},
	}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.HandleMethodNotAllowed = true
	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	s.router.GET("/", s.handleLookup)
	s.router.GET("/lookup", s.handleLookup)
	s.router.GET("/suggest", s.handleSuggest)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Router returns the HTTP handler for the server, for use with http.Server
// or httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}
