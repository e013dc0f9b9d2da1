package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
	"github.com/kweimann/poe-stash-filter/internal/platform/store/pg"
)

func openPG(ctx context.Context, cfg Config, log logger.Logger) (*pgStore, error) {
	var tracer pgx.QueryTracer
	if cfg.PG.LogSQL || cfg.PG.SlowQueryMs > 0 {
		tracer = pg.Tracer(log, time.Duration(cfg.PG.SlowQueryMs)*time.Millisecond, cfg.PG.LogSQL)
	}
	pool, err := pg.Open(ctx, pg.Config{
		URL:            cfg.PG.URL,
		AppName:        cfg.AppName,
		MaxConns:       cfg.PG.MaxConns,
		Tracer:         tracer,
		ConnectRetries: cfg.PG.ConnectRetries,
		PingTimeout:    cfg.PG.PingTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &pgStore{pool: pool, querier: querier{pool}}, nil
}

// pgxQuerier is what a pool and a transaction have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier narrows a pgx querier to RowQuerier
type querier struct{ q pgxQuerier }

func (x querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return x.q.Exec(ctx, sql, args...)
}

func (x querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := x.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (x querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return x.q.QueryRow(ctx, sql, args...)
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fields := r.FieldDescriptions()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

// pgStore is the TxRunner over a pgx pool
type pgStore struct {
	querier
	pool *pgxpool.Pool
}

func (p *pgStore) Tx(ctx context.Context, fn func(RowQuerier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error { return fn(querier{tx}) })
}

func (p *pgStore) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *pgStore) Close() { p.pool.Close() }
