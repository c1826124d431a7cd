package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-filter/auth"
	"github.com/nijaru/yt-filter/config"
	"github.com/nijaru/yt-filter/middleware"
	"github.com/nijaru/yt-filter/services/credits"
	"github.com/nijaru/yt-filter/services/preview"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	preview       *PreviewHandler
	credits       *CreditsHandler
	authenticator auth.Authenticator
	rateLimiter   *middleware.RateLimiter
	db            Pinger
	config        *config.Config
	logger        *logrus.Logger
	server        *http.Server
	startTime     time.Time
}

type ServerOption func(*Server)

func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if cfg.RateLimit.Enabled && s.rateLimiter == nil {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func WithServices(previewSvc preview.Service, creditSvc credits.Service) ServerOption {
	return func(s *Server) {
		s.preview = NewPreviewHandler(previewSvc, s.logger)
		s.credits = NewCreditsHandler(creditSvc)
	}
}

// WithLogger must precede WithServices so the handlers share it.
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithAuthenticator(authenticator auth.Authenticator) ServerOption {
	return func(s *Server) {
		s.authenticator = authenticator
	}
}

func WithDatabase(db Pinger) ServerOption {
	return func(s *Server) {
		s.db = db
	}
}

func WithRateLimiter(rl *middleware.RateLimiter) ServerOption {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// RunLimiterCleanup evicts idle per-client limiters until ctx is done.
func (s *Server) RunLimiterCleanup(ctx context.Context, interval time.Duration) {
	if s.rateLimiter == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rateLimiter.Cleanup()
		}
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.rateLimiter != nil {
			r.Use(s.rateLimiter.Middleware)
		}
		if s.authenticator != nil {
			r.Use(middleware.Authenticate(s.authenticator, s.logger))
		}

		if s.preview != nil {
			r.Post("/preview", s.preview.HandlePreview)
		}
		if s.credits != nil {
			r.Get("/credits/balance", s.credits.HandleBalance)
			r.Get("/credits/transactions", s.credits.HandleTransactions)
		}
	})

	return s.middleware(r)
}

// middleware wraps every route, health checks included. Rate limiting and
// authentication apply to /api only.
func (s *Server) middleware(handler http.Handler) http.Handler {
	return middleware.Chain(handler,
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Recovery(s.logger),
		middleware.CORS(s.config.CORS),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startTime).String(),
	}

	code := http.StatusOK
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.WithError(err).Error("Database health check failed")
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}
	}

	respondJSON(w, r, code, status)
}
