//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

func TestFiltersRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "stashfilter-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	r := NewPG().Bind(st.PG)
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// idempotent
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema again: %v", err)
	}

	first, err := r.Insert(ctx, NewFilter{
		Name: "owl", Pattern: "ow|ve", Parts: []string{"ow", "ve"},
		MaxDepth: 5, CorpusSize: 10, HighlightedSize: 2,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := uuid.Parse(first.ID); err != nil {
		t.Fatalf("id %q is not a uuid", first.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	got, err := r.Get(ctx, uuid.MustParse(first.ID))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Pattern != "ow|ve" || !slices.Equal(got.Parts, []string{"ow", "ve"}) || got.CorpusSize != 10 {
		t.Fatalf("got %+v", got)
	}

	if _, err := r.Get(ctx, uuid.New()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	second, err := r.Insert(ctx, NewFilter{Pattern: "l", Parts: []string{"l"}, MaxDepth: 3, CorpusSize: 2, HighlightedSize: 1})
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}

	list, err := r.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len = %d", len(list))
	}
	if list[0].ID != second.ID && !list[0].CreatedAt.Equal(list[1].CreatedAt) {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}

	one, err := r.List(ctx, 1)
	if err != nil || len(one) != 1 {
		t.Fatalf("List limit 1: %v len=%d", err, len(one))
	}
}
