// Package server wires the exchange runtime with its HTTP and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/intercambio/internal/platform/timeouts"
	"github.com/louisbranch/intercambio/internal/random"
	"github.com/louisbranch/intercambio/internal/services/exchange/service"
	"github.com/louisbranch/intercambio/internal/services/exchange/web"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the gRPC health service name reported for the exchange.
const HealthService = "intercambio.exchange"

// Config describes one exchange server.
type Config struct {
	HTTPAddr     string
	GRPCAddr     string
	Store        string
	DataPath     string
	Participants []string
}

// Server hosts the exchange pages and the optional gRPC health endpoint.
type Server struct {
	httpListener net.Listener
	httpServer   *http.Server
	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
	closeStore   func() error
}

// New opens storage, loads the exchange once and binds the listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	roster, err := RosterFromNames(cfg.Participants)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}
	store, closeStore, err := OpenStore(cfg.Store, cfg.DataPath)
	if err != nil {
		return nil, err
	}
	src, err := random.NewSeededRand()
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("seed random source: %w", err)
	}
	svc, err := service.New(store, roster, src)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("build exchange service: %w", err)
	}
	if _, err := svc.Load(ctx); err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("load exchange: %w", err)
	}

	s := &Server{closeStore: closeStore}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	s.httpListener, err = net.Listen("tcp", httpAddr)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}
	s.httpServer = &http.Server{
		Handler:           web.NewHandler(svc),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	if grpcAddr := strings.TrimSpace(cfg.GRPCAddr); grpcAddr != "" {
		s.grpcListener, err = net.Listen("tcp", grpcAddr)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("listen on %s: %w", grpcAddr, err)
		}
		s.grpcServer = grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
		s.health = health.NewServer()
		grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
		s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		s.health.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return s, nil
}

// Addr returns the HTTP listener address.
func (s *Server) Addr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC listener address, or "" when disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves an exchange server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs the HTTP server, and the gRPC server when configured, until the
// context ends or either server fails.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	serveErr := make(chan error, 2)
	log.Printf("exchange listening on http://%s", s.Addr())
	go func() {
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("serve http: %w", err)
			return
		}
		serveErr <- nil
	}()
	if s.grpcServer != nil {
		log.Printf("exchange health listening at %v", s.GRPCAddr())
		go func() {
			if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				serveErr <- fmt.Errorf("serve gRPC: %w", err)
				return
			}
			serveErr <- nil
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}
	if err := s.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (s *Server) shutdown() error {
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Close releases listeners and storage.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			log.Printf("close exchange store: %v", err)
		}
		s.closeStore = nil
	}
}
