// Package http provides http transport for filters
package http

import (
	stdhttp "net/http"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/modkit/httpkit"
	"github.com/kweimann/poe-stash-filter/internal/services/api/filters/domain"
	svc "github.com/kweimann/poe-stash-filter/internal/services/api/filters/service"
)

// idRoute only matches uuids so static paths under /filters never fall through to get
const idRoute = "/{id:[0-9a-fA-F-]{36}}"

// Register mounts filters endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SynthesizeInput](r, "/synthesize", h.synthesize)
	httpkit.Get(r, "/runs/stats", h.runStats)
	httpkit.Get(r, idRoute, h.get)
	httpkit.Get(r, "/", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /filters/synthesize Filters filtersSynthesize
// @Summary Synthesize a stash search filter
// @Description Returns the shortest set of substrings that matches every highlighted text and no other corpus text
// @Tags Filters
// @Accept json
// @Produce json
// @Param payload body domain.SynthesizeInput true "Corpus and highlighted texts"
// @Success 200 {object} domain.Filter "ok"
// @Success 201 {object} domain.Filter "saved"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /filters/synthesize [post]
func (h *handlers) synthesize(r *stdhttp.Request, in domain.SynthesizeInput) (any, error) {
	f, err := h.svc.Synthesize(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if in.Save {
		return httpkit.Created(f), nil
	}
	return f, nil
}

// @Summary Get a saved filter
// @Tags Filters
// @Produce json
// @Param id path string true "Filter id"
// @Success 200 {object} domain.Filter "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /filters/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// @Summary List saved filters, newest first
// @Tags Filters
// @Produce json
// @Param limit query int false "Page size, at most 100"
// @Success 200 {array} domain.Filter "ok"
// @Router /filters [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 0)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), limit)
}

// @Summary Synthesis run statistics
// @Tags Filters
// @Produce json
// @Param window query string false "Trailing window as a Go duration" default(24h)
// @Success 200 {object} repo.RunStats "ok"
// @Router /filters/runs/stats [get]
func (h *handlers) runStats(r *stdhttp.Request) (any, error) {
	window, err := httpkit.QueryDuration(r, "window", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return h.svc.RunStats(r.Context(), window)
}
