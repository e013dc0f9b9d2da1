package store

import (
	"context"
	"errors"
	"testing"

	chx "github.com/kweimann/poe-stash-filter/internal/platform/store/ch"
)

type fakeCHRows struct {
	left   int
	closed bool
}

func (r *fakeCHRows) Next() bool             { r.left--; return r.left >= 0 }
func (r *fakeCHRows) Scan(dest ...any) error { *(dest[0].(*uint64)) = 3; return nil }
func (r *fakeCHRows) Err() error             { return nil }
func (r *fakeCHRows) Close() error           { r.closed = true; return nil }
func (r *fakeCHRows) Columns() []string      { return []string{"runs"} }

type fakeCH struct {
	table    string
	inserted [][]any
	rows     *fakeCHRows
	queryErr error
	pingErr  error
	closed   bool
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.inserted = table, rows
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (chx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.rows = &fakeCHRows{left: 1}
	return f.rows, nil
}

func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Ping(context.Context) error                 { return f.pingErr }
func (f *fakeCH) Close() error                               { f.closed = true; return nil }

func TestCHStore_QueryAndInsert(t *testing.T) {
	f := &fakeCH{}
	var c Clickhouse = chStore{f}
	ctx := context.Background()

	if err := c.Insert(ctx, "filter_runs", [][]any{{"id", 1}}); err != nil || f.table != "filter_runs" || len(f.inserted) != 1 {
		t.Fatalf("insert: %v %q %v", err, f.table, f.inserted)
	}

	rows, err := c.Query(ctx, "SELECT count() AS runs")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	var n uint64
	if !rows.Next() || rows.Scan(&n) != nil || n != 3 || rows.Columns()[0] != "runs" {
		t.Fatalf("row = %d cols=%v", n, rows.Columns())
	}
	rows.Close()
	if !f.rows.closed {
		t.Fatal("close not forwarded")
	}

	boom := errors.New("boom")
	f.queryErr = boom
	if rows, err := c.Query(ctx, "SELECT 1"); !errors.Is(err, boom) || rows != nil {
		t.Fatalf("rows=%v err=%v", rows, err)
	}
}
