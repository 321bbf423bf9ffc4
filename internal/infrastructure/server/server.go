package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/api/http"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/api/middleware"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/config"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/monitoring"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/logging"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/pipeline"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/schema"
	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/simoutput"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer loads the schema, builds the pipeline and registers the routes.
// outputs, when not nil, is the default simulation-output source for
// requests that do not upload one.
func NewServer(ctx context.Context, cfg *config.Config, logger *logging.Logger, outputs simoutput.Source, version string) (*Server, error) {
	logger.Info("Initializing conversion server",
		zap.String("port", cfg.Server.Port),
		zap.String("schema_source", cfg.Schema.Source),
	)

	set, err := schema.Load(ctx, cfg.Schema.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	logger.Info("Schema loaded", zap.String("origin", set.Origin), zap.String("version", set.Version))

	metrics := monitoring.NewMetrics()

	opts := pipeline.OptionsFrom(cfg, set)
	opts.Outputs = outputs
	opts.Logger = logger
	opts.Metrics = metrics
	p, err := pipeline.New(opts)
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := apihttp.RouterConfig{CORS: middleware.DefaultCORSConfig()}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		routerCfg.RateLimit = &limits
	}

	handlers := apihttp.NewHandlers(p, set, metrics, logger, cfg.Server.MaxBodyBytes, version)
	router := apihttp.NewRouter(handlers, routerCfg)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	_ = s.logger.Sync()
	return nil
}
