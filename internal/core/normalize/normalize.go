// Package normalize folds corpus texts into the form the in-game search box compares against
// Pipeline order
// 1 Sanitize control bytes and drop invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Lower-casing
// 4 Remove zero-width and other format chars
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe, transformer chains come from a pool
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		// order mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Lower(language.Und),
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the folded form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(Sanitize(s), "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// keep the sanitized input rather than a truncated transform
		ns = strings.ToLower(s)
	}

	return collapseSpaces(ns)
}

// All normalizes every text, keeping order and dropping texts that fold to empty
func (n *Normalizer) All(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if v := n.Normalize(t); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// collapseSpaces converts every whitespace run to a single ASCII space and trims the edges.
// Corpus texts are single lines so newlines fold like any other space
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
