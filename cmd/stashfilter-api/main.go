// @title         Stash Filter API
// @version       0.1.0
// @description   Synthesizes stash search filters and keeps the saved ones

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kweimann/poe-stash-filter/internal/core/version"
	"github.com/kweimann/poe-stash-filter/internal/modkit/repokit"
	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
	"github.com/kweimann/poe-stash-filter/internal/platform/metrics"
	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"

	"github.com/kweimann/poe-stash-filter/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	st, err := openStore(ctx, root)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	if st != nil {
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		repokit.MustGuard(ctx, st)
	} else {
		l.Warn().Msg("no database configured, filters will not be saved")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	err = api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        registry(apiCfg),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
	)
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	l.Info().Str("service", version.ServiceName).Msg("starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// openStore enables each backend whose DBURL is set; nil when neither is
func openStore(ctx context.Context, root config.Conf) (*store.Store, error) {
	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	cfg := store.Config{
		AppName: version.ServiceName,
		PG: store.PGConfig{
			URL:         pgCfg.MayString("DBURL", ""),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),

			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: store.CHConfig{
			URL:         chCfg.MayString("DBURL", ""),
			ClientName:  "stashfilter",
			ClientTag:   "api",
			DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 0),
		},
	}
	cfg.PG.Enabled = cfg.PG.URL != ""
	cfg.CH.Enabled = cfg.CH.URL != ""
	if !cfg.PG.Enabled && !cfg.CH.Enabled {
		return nil, nil
	}
	return store.Open(ctx, cfg, store.WithLogger(*logger.Named("store")))
}

// registry is the prometheus registry served at /metrics, nil when CORE_API_METRICS is off
func registry(apiCfg config.Conf) *prometheus.Registry {
	if !apiCfg.MayBool("METRICS", true) {
		return nil
	}
	return metrics.New()
}
