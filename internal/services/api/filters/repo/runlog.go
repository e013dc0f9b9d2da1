package repo

import (
	"context"
	"time"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"
)

// RunsTable is the clickhouse table synthesis runs are appended to
const RunsTable = "filter_runs"

// Run is one synthesis, saved or not
type Run struct {
	FilterID        string
	CreatedAt       time.Time
	CorpusSize      int
	HighlightedSize int
	MaxDepth        int
	Parts           int
	PatternLen      int
	Elapsed         time.Duration
}

// RunStats aggregates runs over a window
type RunStats struct {
	Runs          uint64  `json:"runs"`
	AvgParts      float64 `json:"avg_parts"`
	AvgElapsedUS  float64 `json:"avg_elapsed_us"`
	MaxCorpusSize int64   `json:"max_corpus_size"`
}

// RunLog appends synthesis runs to an analytics store
type RunLog interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, r Run) error
	Stats(ctx context.Context, since time.Time) (RunStats, error)
}

// NewCH returns a RunLog over the clickhouse seam
func NewCH(c store.Clickhouse) RunLog { return &chRuns{c: c} }

type chRuns struct{ c store.Clickhouse }

const runsSchema = `
CREATE TABLE IF NOT EXISTS ` + RunsTable + ` (
	filter_id String,
	created_at DateTime64(3, 'UTC'),
	corpus_size Int64,
	highlighted_size Int64,
	max_depth Int64,
	parts Int64,
	pattern_len Int64,
	elapsed_us Int64
) ENGINE = MergeTree
ORDER BY created_at`

func (r *chRuns) EnsureSchema(ctx context.Context) error {
	if err := r.c.Exec(ctx, runsSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "ensure filter_runs schema")
	}
	return nil
}

// Append writes one row; column order matches runsSchema
func (r *chRuns) Append(ctx context.Context, run Run) error {
	row := []any{
		run.FilterID,
		run.CreatedAt.UTC(),
		int64(run.CorpusSize),
		int64(run.HighlightedSize),
		int64(run.MaxDepth),
		int64(run.Parts),
		int64(run.PatternLen),
		run.Elapsed.Microseconds(),
	}
	if err := r.c.Insert(ctx, RunsTable, [][]any{row}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "append filter run")
	}
	return nil
}

func (r *chRuns) Stats(ctx context.Context, since time.Time) (RunStats, error) {
	const sql = `
SELECT count() AS runs, avg(parts), avg(elapsed_us), max(corpus_size)
FROM ` + RunsTable + `
WHERE created_at >= ?`

	rows, err := r.c.Query(ctx, sql, since.UTC())
	if err != nil {
		return RunStats{}, perr.Wrap(err, perr.ErrorCodeDB, "query filter run stats")
	}
	defer rows.Close()

	var s RunStats
	if rows.Next() {
		if err := rows.Scan(&s.Runs, &s.AvgParts, &s.AvgElapsedUS, &s.MaxCorpusSize); err != nil {
			return RunStats{}, perr.Wrap(err, perr.ErrorCodeDB, "scan filter run stats")
		}
	}
	if err := rows.Err(); err != nil {
		return RunStats{}, perr.Wrap(err, perr.ErrorCodeDB, "iterate filter run stats")
	}
	return s, nil
}
