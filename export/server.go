package export

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Config configures the metrics scrape server.
type Config struct {
	// Enabled turns the scrape endpoint on.
	Enabled bool `yaml:"enabled"`

	// Addr is the listen address. Defaults to ":9090".
	Addr string `yaml:"addr"`
}

// Server serves registered collectors over HTTP for Prometheus scrapes.
type Server struct {
	log      logrus.FieldLogger
	addr     string
	server   *http.Server
	listener net.Listener
	registry *prometheus.Registry

	running atomic.Bool
}

// NewServer creates a metrics server with an empty registry.
func NewServer(log logrus.FieldLogger, cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":9090"
	}

	return &Server{
		log:      log.WithField("component", "export"),
		addr:     addr,
		registry: prometheus.NewRegistry(),
	}
}

// Register adds a collector to the scrape registry.
func (s *Server) Register(c prometheus.Collector) error {
	return s.registry.Register(c)
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.addr
}

// Start binds the listener and begins serving scrapes in the background.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("export server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		s.registry,
		promhttp.HandlerOpts{},
	))

	s.server = &http.Server{Handler: mux}

	go func() {
		if err := s.server.Serve(listener); err != nil &&
			err != http.ErrServerClosed {
			s.log.WithError(err).Error("Metrics server failed")
		}
	}()

	s.log.WithField("addr", listener.Addr().String()).
		Info("Metrics server listening")

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if err := s.server.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}

	return nil
}
