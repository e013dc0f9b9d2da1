// Package middleware holds the request middlewares mounted on the API scope.
// chi middlewares are re-exported so callers never import chi directly
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"

	pstrings "github.com/kweimann/poe-stash-filter/internal/platform/strings"
)

// Middleware is the shape every entry of a stack has
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID reuses an inbound X-Request-ID or mints one
	RequestID Middleware = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
	RealIP Middleware = chimw.RealIP
	// NoCache marks every response uncacheable
	NoCache Middleware = chimw.NoCache
	// StripSlashes routes /filters/ as /filters
	StripSlashes Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips and deflates responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// AllowContentType answers 415 to bodies of any other content type
func AllowContentType(types ...string) Middleware { return chimw.AllowContentType(types...) }

// Throttle caps concurrent requests at limit
func Throttle(limit int) Middleware { return chimw.Throttle(limit) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is the subset of go-chi/cors the API configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS allows GET and POST with JSON bodies and the request id header unless told otherwise
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
