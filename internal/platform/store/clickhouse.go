package store

import (
	"context"

	chx "github.com/kweimann/poe-stash-filter/internal/platform/store/ch"
)

// chClient is the part of *ch.CH the seam forwards to
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (chx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// dialCH is a seam for tests
var dialCH = func(ctx context.Context, cfg chx.Config) (chClient, error) { return chx.Open(ctx, cfg) }

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := dialCH(ctx, chx.Config{
		URL:         cfg.CH.URL,
		ClientName:  cfg.CH.clientName(cfg.AppName),
		ClientTag:   cfg.CH.ClientTag,
		DialTimeout: cfg.CH.DialTimeout,
	})
	if err != nil {
		return nil, err
	}
	return chStore{c}, nil
}

// chStore only differs from the client in Rows.Close having no result
type chStore struct{ chClient }

func (s chStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := s.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

type chRows struct{ chx.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
