package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/wardenlabs/warden/internal/audit"
	"github.com/wardenlabs/warden/internal/auth"
	"github.com/wardenlabs/warden/internal/infrastructure/config"
	"github.com/wardenlabs/warden/internal/infrastructure/database"
	"github.com/wardenlabs/warden/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Sessions *auth.Service
	Audit    audit.Repository
	DB       *database.DB
	Version  string
}

// counters tracks session activity for the metrics endpoint. Counters are
// atomic; there is no other shared mutable state in the request path.
type counters struct {
	loginSuccess  atomic.Int64
	loginFailure  atomic.Int64
	refreshes     atomic.Int64
	refreshDenied atomic.Int64
	logouts       atomic.Int64
}

// Server is the Warden HTTP API server.
//
// It owns the HTTP listener, routes, and middleware. Create with New()
// and start with Start(); Close() drains in-flight requests.
type Server struct {
	cfg       config.APIConfig
	secCfg    config.SecurityConfig
	logger    *logging.Logger
	sessions  *auth.Service
	audit     audit.Repository
	db        *database.DB
	version   string
	startTime time.Time
	server    *http.Server
	stats     counters
}

// New creates an API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if deps.Audit == nil {
		return nil, fmt.Errorf("audit repository is required")
	}

	return &Server{
		cfg:       deps.Config,
		secCfg:    deps.Security,
		logger:    deps.Logger,
		sessions:  deps.Sessions,
		audit:     deps.Audit,
		db:        deps.DB,
		version:   deps.Version,
		startTime: time.Now(),
	}, nil
}

// Start begins listening for HTTP connections in a background goroutine.
// The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       s.cfg.Timeouts.ReadDuration(),
		ReadHeaderTimeout: s.cfg.Timeouts.ReadDuration(),
		WriteTimeout:      s.cfg.Timeouts.WriteDuration(),
		IdleTimeout:       s.cfg.Timeouts.IdleDuration(),
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to
// gracefulShutdownTimeout for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
