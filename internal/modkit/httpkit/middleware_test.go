package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func wrap(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack(t *testing.T) {
	hits := 0
	root := wrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}), CommonStack())

	cases := []struct {
		name   string
		method string
		path   string
		ct     string
		status int
		hit    bool
	}{
		{"heartbeat answers before routing", http.MethodGet, "/health", "", http.StatusOK, false},
		{"plain get reaches handler", http.MethodGet, "/ping", "", http.StatusNoContent, true},
		{"json post reaches handler", http.MethodPost, "/ping", "application/json", http.StatusNoContent, true},
		{"xml post is rejected", http.MethodPost, "/ping", "text/xml", http.StatusUnsupportedMediaType, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hits = 0
			req := httptest.NewRequest(c.method, c.path, nil)
			if c.ct != "" {
				req = httptest.NewRequest(c.method, c.path, strings.NewReader("{}"))
				req.Header.Set("Content-Type", c.ct)
			}
			req.Header.Set("X-Request-ID", "rid-42")
			rec := httptest.NewRecorder()
			root.ServeHTTP(rec, req)

			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d", rec.Code, c.status)
			}
			if (hits == 1) != c.hit {
				t.Fatalf("handler hits = %d", hits)
			}
			if c.hit && rec.Header().Get("X-Request-ID") != "rid-42" {
				t.Fatalf("request id not echoed: %v", rec.Header())
			}
		})
	}
}

func TestThrottle(t *testing.T) {
	final := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	for _, limit := range []int{-1, 0, 4} {
		rec := httptest.NewRecorder()
		Throttle(limit)(final).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("limit %d: status %d", limit, rec.Code)
		}
	}
}
