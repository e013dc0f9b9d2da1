// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"reflect"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/core/synth"
	"github.com/kweimann/poe-stash-filter/internal/core/verify"
	"github.com/kweimann/poe-stash-filter/internal/core/version"
	modkit "github.com/kweimann/poe-stash-filter/internal/modkit"
	"github.com/kweimann/poe-stash-filter/internal/modkit/httpkit"

	metahttp "github.com/kweimann/poe-stash-filter/internal/services/api/meta/http"
)

// Module serves /meta
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New builds the meta module; storage in deps only feeds readiness
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{startedAt: time.Now()}
	m.Base = modkit.NewBase("meta", "/meta", func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.ServiceName,
			StartedAt:   m.startedAt,
			PG:          pinger(deps.PG),
			CH:          pinger(deps.CH),
			SelfCheck:   synthCheck,
		})
	}, opts...)
	return m
}

// Ports is nil; meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }

// pinger hands nil interfaces through as untyped nil so readiness reports skipped
func pinger(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	return v
}

var (
	checkCorpus      = []string{"Owl Amulet", "Owl Ring", "Vermillion Amulet", "Onyx Ring"}
	checkHighlighted = []string{"Owl Amulet", "Vermillion Amulet"}
)

// synthCheck synthesizes a filter for a fixed corpus and verifies it
func synthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	parts, err := synth.Synthesize(checkCorpus, checkHighlighted)
	if err != nil {
		return err
	}
	rep, err := verify.Literals(parts, checkHighlighted, synth.Background(checkCorpus, checkHighlighted))
	if err != nil {
		return err
	}
	return rep.Err()
}
