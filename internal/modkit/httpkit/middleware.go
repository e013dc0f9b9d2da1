package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/platform/net/middleware"
)

const (
	requestTimeout = 30 * time.Second
	slowRequest    = 500 * time.Millisecond
)

// CommonStack is the middleware every API scope runs, outermost first.
// corsOrigins defaults to any origin
func CommonStack(corsOrigins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RequestLogger,
		middleware.RealIP,
		middleware.AccessLog(slowRequest),
		middleware.RecoverJSON,
		middleware.Heartbeat("/health"),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: corsOrigins}),
		middleware.AllowContentType("application/json"),
		middleware.NoCache,
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.Timeout(requestTimeout),
	}
}

// Throttle caps in flight requests for a module; zero or less disables it
func Throttle(limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.Throttle(limit)
}
