package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
)

func TestURLParam(t *testing.T) {
	mux := chi.NewRouter()
	var got string
	mux.Get("/filters/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = phttp.URLParam(r, "id")
	})
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/filters/abc", nil))
	if got != "abc" {
		t.Fatalf("URLParam = %q", got)
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"/x", 20, false},
		{"/x?limit=5", 5, false},
		{"/x?limit=%205%20", 5, false},
		{"/x?limit=five", 0, true},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, c.url, nil)
		got, err := phttp.QueryInt(r, "limit", 20)
		if c.wantErr {
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("%s: expected invalid argument, got %v", c.url, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("%s: got %d, %v", c.url, got, err)
		}
	}
}

func TestQueryDuration(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?window=6h", nil)
	if d, err := phttp.QueryDuration(r, "window", time.Hour); err != nil || d != 6*time.Hour {
		t.Fatalf("got %v, %v", d, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	if d, err := phttp.QueryDuration(r, "window", time.Hour); err != nil || d != time.Hour {
		t.Fatalf("default: got %v, %v", d, err)
	}

	for _, bad := range []string{"/x?window=soon", "/x?window=-1h"} {
		r = httptest.NewRequest(http.MethodGet, bad, nil)
		if _, err := phttp.QueryDuration(r, "window", time.Hour); err == nil {
			t.Fatalf("%s: expected error", bad)
		}
	}
}
