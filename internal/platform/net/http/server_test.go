package http

import (
	"context"
	"io"
	"net"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kweimann/poe-stash-filter/internal/platform/config"
)

func TestListenAddr(t *testing.T) {
	cfg := config.New().Prefix("SRVTEST_")

	if got := listenAddr(cfg); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}

	t.Setenv("SRVTEST_PORT", "8081")
	if got := listenAddr(cfg); got != ":8081" {
		t.Fatalf("port addr = %q", got)
	}

	t.Setenv("SRVTEST_ADDR", "127.0.0.1:9000")
	if got := listenAddr(cfg); got != "127.0.0.1:9000" {
		t.Fatalf("addr wins over port, got %q", got)
	}
}

func TestNewServer_OptsSeeMux(t *testing.T) {
	called := false
	s := NewServer(config.New().Prefix("SRVTEST_"), func(m *chi.Mux) { called = m != nil })
	if !called {
		t.Fatal("option not applied")
	}
	if s.Router().Mux() == nil || s.Addr() == "" {
		t.Fatal("server not initialized")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := NewServer(config.New().Prefix("SRVTEST_"))
	s.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, ln) }()

	resp, err := stdhttp.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_ClosedListenerReturnsError(t *testing.T) {
	s := NewServer(config.New().Prefix("SRVTEST_"))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_ = ln.Close()

	if err := s.serve(context.Background(), ln); err == nil {
		t.Fatal("expected error from closed listener")
	}
}
