package module

import (
	"github.com/kweimann/poe-stash-filter/internal/core/synth"
	"github.com/kweimann/poe-stash-filter/internal/platform/config"
	fsvc "github.com/kweimann/poe-stash-filter/internal/services/api/filters/service"
)

// FromConfig reads FILTERS_* values from process config/env
func FromConfig(cfg config.Conf) fsvc.Config {
	fc := cfg.Prefix("FILTERS_")
	return fsvc.Config{
		DefaultMaxDepth: fc.MayInt("MAX_DEPTH", synth.DefaultMaxDepth),
		MaxCorpus:       fc.MayInt("MAX_CORPUS", 20000),
		ListLimit:       fc.MayInt("LIST_LIMIT", 20),
	}
}

// MaxInflight bounds concurrent filters requests, FILTERS_MAX_INFLIGHT, zero disables
func MaxInflight(cfg config.Conf) int {
	return cfg.Prefix("FILTERS_").MayInt("MAX_INFLIGHT", 32)
}
