// Package modkit holds what API modules share: their dependencies and the routing base they embed
package modkit

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kweimann/poe-stash-filter/internal/modkit/httpkit"
	"github.com/kweimann/poe-stash-filter/internal/modkit/module"
	"github.com/kweimann/poe-stash-filter/internal/modkit/repokit"
	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
	"github.com/kweimann/poe-stash-filter/internal/platform/store"
	str "github.com/kweimann/poe-stash-filter/internal/platform/strings"
)

// Deps are handed to every module constructor. PG, CH and Metrics may be nil
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	Metrics prometheus.Registerer
}

// Module is what the API mounts
type Module = module.Module

// Option overrides a module default
type Option func(*Base)

// WithName renames the module in the ports registry
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix moves the module routes under prefix
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares appends middleware to the module scope
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithRoutes registers extra routes after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Base) { b.extra = append(b.extra, fn) }
}

// Base implements the routing half of Module; modules embed it and add Ports
type Base struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
	extra    []func(httpkit.Router)
}

// NewBase mounts register under prefix once opts are applied
func NewBase(name, prefix string, register func(httpkit.Router), opts ...Option) Base {
	b := Base{name: name, prefix: prefix, register: register}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Name panics when blank
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix is normalized to one leading slash; it panics when it names the root
func (b Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares are applied to the module scope in order
func (b Base) Middlewares() []func(http.Handler) http.Handler { return b.mws }

// MountRoutes scopes the module routes and middleware under Prefix
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(sub httpkit.Router) {
		if len(b.mws) > 0 {
			sub.Use(b.mws...)
		}
		if b.register != nil {
			b.register(sub)
		}
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
