package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// URLParam returns a chi path parameter
func URLParam(r *http.Request, name string) string { return chi.URLParam(r, name) }

// QueryInt parses an integer query parameter, returning def when it is absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", name), name)
	}
	return n, nil
}

// QueryDuration parses a duration query parameter, returning def when it is absent
func QueryDuration(r *http.Request, name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive duration like 6h", name), name)
	}
	return d, nil
}
