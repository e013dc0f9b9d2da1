// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
	"github.com/kweimann/poe-stash-filter/internal/platform/metrics"
	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"

	"github.com/kweimann/poe-stash-filter/internal/modkit"
	"github.com/kweimann/poe-stash-filter/internal/modkit/httpkit"
	"github.com/kweimann/poe-stash-filter/internal/modkit/module"
	"github.com/kweimann/poe-stash-filter/internal/modkit/swaggerkit"

	filtersdom "github.com/kweimann/poe-stash-filter/internal/services/api/filters/domain"
	filtersmod "github.com/kweimann/poe-stash-filter/internal/services/api/filters/module"
	metamod "github.com/kweimann/poe-stash-filter/internal/services/api/meta/module"
)

// schemaTimeout bounds table bootstrap at startup
const schemaTimeout = 30 * time.Second

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *prometheus.Registry
	EnableSwagger  bool
	EnableProfiler bool
	// CORSOrigins limits cross origin callers; empty allows any
	CORSOrigins []string
}

// Mount mounts the API service onto the given router
// a nil Store serves synthesis only; persistence endpoints then answer unavailable
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Metrics != nil {
		deps.Metrics = opt.Metrics
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	filters := filtersmod.New(deps)
	mods := []module.Module{
		metamod.New(deps),
		filters,
	}

	if opt.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()
		if err := module.MustPortsOf[filtersdom.SchemaPort](filters).EnsureSchema(ctx); err != nil {
			return err
		}
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		metrics.Mount(r, "/metrics", opt.Metrics)

		for _, m := range mods {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return nil
}
