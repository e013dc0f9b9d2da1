// Package render turns synthesized parts into the text typed into the stash search box
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// DefaultSeparator joins alternatives
const DefaultSeparator = "|"

// Options controls rendering
type Options struct {
	Separator string
	// Escape quotes regex metacharacters in every part
	Escape bool
	// Quote wraps the pattern in double quotes. Patterns with a space are always quoted
	Quote bool
}

// Join renders parts as one alternation
func Join(parts []string, opts Options) string {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	quote := opts.Quote
	out := make([]string, len(parts))
	for i, p := range parts {
		if opts.Escape {
			p = coregex.QuoteMeta(p)
		}
		if strings.ContainsRune(p, ' ') {
			quote = true
		}
		out[i] = p
	}

	s := strings.Join(out, sep)
	if quote && s != "" {
		return `"` + s + `"`
	}
	return s
}

// Length counts runes, the unit the search box limits on
func Length(pattern string) int { return utf8.RuneCountInString(pattern) }
