// Package repokit binds repositories to whichever store seam the process opened
package repokit

import (
	"context"
	"fmt"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/platform/store"
)

type (
	// Queryer is the sql surface a repository is bound to
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
)

// Binder builds a repository T over a Queryer, so one repo type serves a pool and a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q and panics when q is nil, a wiring mistake
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// guardTimeout applies when ctx carries no deadline
const guardTimeout = 5 * time.Second

// MustGuard panics unless every backend of st answers within the ctx deadline
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
