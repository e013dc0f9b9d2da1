package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
)

type nameBody struct {
	Name string `json:"name" validate:"required"`
}

func TestMountAPI_ScopesMiddleware(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	scoped := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Scope", "api")
			next.ServeHTTP(w, req)
		})
	}

	MountAPI(r, "/v2/", []func(http.Handler) http.Handler{scoped}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "v1", nil })
	})
	r.Get("/outside", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Scope") != "api" {
		t.Fatalf("v2 status=%d scope=%q", rec.Code, rec.Header().Get("X-Scope"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	var env Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Data != "v1" || rec.Header().Get("X-Scope") != "" {
		t.Fatalf("v1 data=%v scope=%q", env.Data, rec.Header().Get("X-Scope"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/outside", nil))
	if rec.Header().Get("X-Scope") != "" {
		t.Fatal("scoped middleware leaked outside /api")
	}
}

func TestPostJSON_CreatedAndParams(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	PostJSON(r, "/filters/{id}", func(req *http.Request, in nameBody) (any, error) {
		limit, err := QueryInt(req, "limit", 10)
		if err != nil {
			return nil, err
		}
		window, err := QueryDuration(req, "window", time.Hour)
		if err != nil {
			return nil, err
		}
		return Created(map[string]any{
			"id":     Param(req, "id"),
			"name":   in.Name,
			"limit":  limit,
			"window": window.String(),
		}), nil
	})

	req := httptest.NewRequest(http.MethodPost, "/filters/f9?limit=3", strings.NewReader(`{"name":"owl"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var env Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	data, _ := env.Data.(map[string]any)
	if data["id"] != "f9" || data["name"] != "owl" || data["limit"] != float64(3) || data["window"] != "1h0m0s" {
		t.Fatalf("data = %v", data)
	}

	req = httptest.NewRequest(http.MethodPost, "/filters/f9?window=later", strings.NewReader(`{"name":"owl"}`))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code < 400 {
		t.Fatalf("bad window accepted: %d", rec.Code)
	}
}
