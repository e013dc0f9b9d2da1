package api

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kweimann/poe-stash-filter/internal/modkit/module"
	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
	"github.com/kweimann/poe-stash-filter/internal/platform/testkit"

	filtersmod "github.com/kweimann/poe-stash-filter/internal/services/api/filters/module"
)

func mountAPI(t *testing.T) stdhttp.Handler {
	t.Helper()
	t.Cleanup(module.Reset)

	mux := chi.NewRouter()
	if err := Mount(phttp.AdaptChi(mux), Options{Config: config.New()}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mux
}

func TestMount_WithoutStore(t *testing.T) {
	h := mountAPI(t)

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/filters/synthesize",
		strings.NewReader(`{"corpus":["apple","apricot","banana"],"highlighted":["apple"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("synthesize status = %d body=%s", rec.Code, rec.Body.String())
	}
	testkit.MustContain(t, rec.Body.String(), `"pattern":"l"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/filters", nil))
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("list without storage status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/v1/meta/ready", nil))
	var env struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode ready: %v", err)
	}
	if env.Data.Status != "ok" {
		t.Fatalf("ready status = %q", env.Data.Status)
	}
}

func TestMount_RegistersPorts(t *testing.T) {
	mountAPI(t)
	if _, ok := module.PortsAs[filtersmod.Ports]("filters"); !ok {
		t.Fatalf("filters ports not registered")
	}
}
