// Package httpkit is the routing surface modules mount against.
// Modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"
	"strings"
	"time"

	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Envelope is the response body every endpoint writes
	Envelope = phttp.Envelope
	// Response lets a handler pick a status other than 200
	Response = phttp.Response
)

// Created marks a handler result as 201
func Created(data any) Response { return phttp.Created(data) }

// PostJSON registers a POST route whose body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get registers a GET route answered through the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// QueryInt reads an integer query parameter, def when absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	return phttp.QueryInt(r, name, def)
}

// QueryDuration reads a duration query parameter such as 6h, def when absent
func QueryDuration(r *http.Request, name string, def time.Duration) (time.Duration, error) {
	return phttp.QueryDuration(r, name, def)
}

// MountAPI scopes mount under /api/{version} with mw applied to that scope only
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
