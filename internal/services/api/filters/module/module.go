// Package module wires filters into the API
package module

import (
	modkit "github.com/kweimann/poe-stash-filter/internal/modkit"
	"github.com/kweimann/poe-stash-filter/internal/modkit/httpkit"
	fhttp "github.com/kweimann/poe-stash-filter/internal/services/api/filters/http"
	frepo "github.com/kweimann/poe-stash-filter/internal/services/api/filters/repo"
	fsvc "github.com/kweimann/poe-stash-filter/internal/services/api/filters/service"
)

// Module serves /filters; PG and CH in deps are optional
type Module struct {
	modkit.Base
	ports Ports
}

// New builds the service over whatever storage deps carry
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	var runs frepo.RunLog
	if deps.CH != nil {
		runs = frepo.NewCH(deps.CH)
	}
	cfg := FromConfig(deps.Cfg)
	cfg.Registerer = deps.Metrics
	svc := fsvc.New(deps.PG, frepo.NewPG(), runs, cfg)

	// synthesis is cpu bound, so the throttle runs before any caller supplied middleware
	opts = append([]modkit.Option{modkit.WithMiddlewares(httpkit.Throttle(MaxInflight(deps.Cfg)))}, opts...)

	return &Module{
		Base:  modkit.NewBase("filters", "/filters", func(r httpkit.Router) { fhttp.Register(r, svc) }, opts...),
		ports: Ports{Filters: svc, Schema: svc},
	}
}
