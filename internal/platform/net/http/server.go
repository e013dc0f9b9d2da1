package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

const (
	defaultPort   = "4000"
	headerTimeout = 10 * time.Second
	shutdownGrace = 10 * time.Second
)

// Server owns the chi mux and the listener serving it
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads ADDR, falling back to PORT, from cfg.
// opts see the mux before any module mounts
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              listenAddr(cfg),
			Handler:           m,
			ReadHeaderTimeout: headerTimeout,
		},
	}
}

func listenAddr(cfg config.Conf) string {
	if addr := cfg.MayString("ADDR", ""); addr != "" {
		return addr
	}
	return net.JoinHostPort("", cfg.MayString("PORT", defaultPort))
}

// Router exposes the mux through the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then drains in flight requests for shutdownGrace
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	done := make(chan error, 1)
	go func() { done <- s.srv.Serve(ln) }()

	select {
	case err := <-done:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	<-done
	return nil
}
