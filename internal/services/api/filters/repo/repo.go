// Package repo provides postgres persistence and the clickhouse run log for filters
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kweimann/poe-stash-filter/internal/modkit/repokit"
	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"
)

// Repo defines the repository contract for filters
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, in NewFilter) (RowFilter, error)
	Get(ctx context.Context, id uuid.UUID) (RowFilter, error)
	List(ctx context.Context, limit int) ([]RowFilter, error)
}

// NewFilter is the insert payload
type NewFilter struct {
	Name            string
	Pattern         string
	Parts           []string
	MaxDepth        int
	CorpusSize      int
	HighlightedSize int
}

// RowFilter represents a filters row
type RowFilter struct {
	ID              string
	Name            string
	Pattern         string
	Parts           []string
	MaxDepth        int
	CorpusSize      int
	HighlightedSize int
	CreatedAt       time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// newID is a seam for tests
var newID = uuid.New

const schema = `
create table if not exists filters (
	id uuid primary key,
	name text not null default '',
	pattern text not null,
	parts text[] not null,
	max_depth int not null,
	corpus_size int not null,
	highlighted_size int not null,
	created_at timestamptz not null default now()
);
create index if not exists filters_created_at_idx on filters (created_at desc);
`

const selectCols = `id::text, name, pattern, parts, max_depth, corpus_size, highlighted_size, created_at`

func (r *queries) EnsureSchema(ctx context.Context) error {
	if _, err := store.Exec(ctx, r.q, schema); err != nil {
		return perr.FromPostgres(err, "ensure filters schema")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, in NewFilter) (RowFilter, error) {
	const sql = `
insert into filters (id, name, pattern, parts, max_depth, corpus_size, highlighted_size)
values ($1::uuid, $2, $3, $4, $5, $6, $7)
returning ` + selectCols

	row, err := store.One(ctx, r.q, scanFilter, sql,
		newID().String(), in.Name, in.Pattern, in.Parts, in.MaxDepth, in.CorpusSize, in.HighlightedSize,
	)
	if err != nil {
		return RowFilter{}, perr.FromPostgresWithField(err, "insert filter")
	}
	return row, nil
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (RowFilter, error) {
	const sql = `select ` + selectCols + ` from filters where id = $1::uuid`
	row, err := store.One(ctx, r.q, scanFilter, sql, id.String())
	if errors.Is(err, perr.ErrNotFound) {
		return RowFilter{}, perr.NotFoundf("filter %s not found", id)
	}
	if err != nil {
		return RowFilter{}, perr.FromPostgresf(err, "get filter %s", id)
	}
	return row, nil
}

func (r *queries) List(ctx context.Context, limit int) ([]RowFilter, error) {
	const sql = `select ` + selectCols + ` from filters order by created_at desc, id limit $1`
	rows, err := store.Many(ctx, r.q, scanFilter, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list filters")
	}
	return rows, nil
}

func scanFilter(row store.Row) (RowFilter, error) {
	var f RowFilter
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Pattern,
		&f.Parts,
		&f.MaxDepth,
		&f.CorpusSize,
		&f.HighlightedSize,
		&f.CreatedAt,
	)
	return f, err
}
