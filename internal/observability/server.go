package observability

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
)

// Server exposes /metrics over HTTP.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        logger.Logger
}

// NewServer creates a server for addr (host:port; ":0" picks a free port).
func NewServer(addr string, metrics *Metrics, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		log: log,
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("metrics server listen: %w", err)
	}
	s.listener = ln
	s.httpServer.Addr = ln.Addr().String()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("metrics server: %v", err)
		}
	}()
	s.log.Info("serving metrics on http://%s/metrics", s.httpServer.Addr)
	return nil
}

// Addr returns the listen address, resolved after Start.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
