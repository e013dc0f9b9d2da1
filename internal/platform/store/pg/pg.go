// Package pg opens the pgx pool behind the postgres seam
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultRetries     = 20
	defaultPingTimeout = 3 * time.Second
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32

	// Tracer observes every statement; nil disables tracing
	Tracer pgx.QueryTracer

	ConnectRetries int
	PingTimeout    time.Duration
}

// seams for tests
var (
	newPool = pgxpool.NewWithConfig

	retryInitial = 150 * time.Millisecond
	retryMax     = 2 * time.Second
)

// Open builds the pool and waits until the server answers a ping
func Open(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pcfg.ConnConfig.Tracer = cfg.Tracer

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, pool, cfg.ConnectRetries, cfg.PingTimeout); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

type pinger interface{ Ping(context.Context) error }

// waitReady pings with capped exponential backoff until success, retries run out or ctx ends
func waitReady(ctx context.Context, p pinger, retries int, timeout time.Duration) error {
	if retries <= 0 {
		retries = defaultRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryInitial
	exp.MaxInterval = retryMax
	exp.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries-1)), ctx)

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Ping(pctx)
	}, b)
	if err != nil {
		return fmt.Errorf("ping failed after %d attempts: %w", attempts, err)
	}
	return nil
}
