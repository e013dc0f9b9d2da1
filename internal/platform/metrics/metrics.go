// Package metrics exposes prometheus metrics for the API process
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	phttp "github.com/kweimann/poe-stash-filter/internal/platform/net/http"
)

// Namespace prefixes every metric the service registers
const Namespace = "stashfilter"

// New returns a registry carrying the go runtime and process collectors
func New() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Mount serves reg in the text exposition format at path; a nil reg mounts nothing
func Mount(r phttp.Router, path string, reg *prometheus.Registry) {
	if reg == nil {
		return
	}
	r.Handle(path, Handler(reg))
}

// Handler is the scrape handler for reg
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
