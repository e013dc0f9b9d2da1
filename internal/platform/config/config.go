// Package config reads settings from environment variables under nested prefixes.
// May getters fall back to a default and warn on malformed values; Must getters panic
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

// Conf is a view over the environment scoped by a key prefix such as CORE_API_
type Conf struct{ prefix string }

// New is the unscoped root
func New() Conf { return Conf{} }

// Prefix scopes c further, e.g. New().Prefix("CORE_").Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value of key; blank counts as unset
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	return v, v != ""
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msg("invalid config value, using default")
		return def
	}
	return v
}

func must[T any](c Conf, key string, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required config")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(key)).Str("value", s).Msg("invalid required config")
	}
	return v
}

func str(s string) (string, error) { return s, nil }

// MayString is the value of key or def
func (c Conf) MayString(key, def string) string { return may(c, key, def, str) }

// MayInt is the integer value of key or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool accepts what strconv.ParseBool accepts
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration accepts Go durations such as 750ms or 2h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blank items; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MustString panics when key is unset
func (c Conf) MustString(key string) string { return must(c, key, str) }

// MustInt panics when key is unset or not an integer
func (c Conf) MustInt(key string) int { return must(c, key, strconv.Atoi) }

// MustDuration panics when key is unset or not a duration
func (c Conf) MustDuration(key string) time.Duration { return must(c, key, time.ParseDuration) }

// Require panics on the first unset key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if _, ok := c.lookup(k); !ok {
			logger.Get().Panic().Str("key", c.key(k)).Msg("missing required config")
		}
	}
}
