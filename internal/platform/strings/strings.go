// Package strings has the few string and slice helpers module wiring needs
package strings

import std "strings"

// IfEmpty is def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<what> is required" when s is blank
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to /name form and panics on the bare root
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/")
	if p == "/" {
		panic("mount prefix is required")
	}
	return p
}
