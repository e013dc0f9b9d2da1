// Package verify checks a synthesized filter against the corpus it was built from.
// A filter is sound when every highlighted text matches (coverage)
// and no background text does (exclusivity)
package verify

import (
	"fmt"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/coregex"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// Report lists the texts breaking each property
type Report struct {
	Uncovered []string `json:"uncovered,omitempty"`
	Leaked    []string `json:"leaked,omitempty"`
}

// OK reports whether both properties hold
func (r Report) OK() bool { return len(r.Uncovered) == 0 && len(r.Leaked) == 0 }

// Err returns nil when r is OK, a validation error naming the first offenders otherwise
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	var b strings.Builder
	if len(r.Uncovered) > 0 {
		fmt.Fprintf(&b, "%d highlighted texts not matched (first %q)", len(r.Uncovered), r.Uncovered[0])
	}
	if len(r.Leaked) > 0 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d background texts matched (first %q)", len(r.Leaked), r.Leaked[0])
	}
	return perr.New(perr.ErrorCodeValidation, b.String())
}

// matcher is the one capability both checks need
type matcher func(text string) bool

func check(match matcher, highlighted, background []string) Report {
	var r Report
	for _, h := range highlighted {
		if !match(h) {
			r.Uncovered = append(r.Uncovered, h)
		}
	}
	for _, b := range background {
		if match(b) {
			r.Leaked = append(r.Leaked, b)
		}
	}
	return r
}

// Literals scans every text for any of the parts in one pass per text
func Literals(parts, highlighted, background []string) (Report, error) {
	if len(parts) == 0 {
		return check(func(string) bool { return false }, highlighted, background), nil
	}

	builder := ahocorasick.NewBuilder()
	for _, p := range parts {
		if p == "" {
			return Report{}, perr.InvalidArgf("empty part matches every text")
		}
		builder.AddPattern([]byte(p))
	}
	auto, err := builder.Build()
	if err != nil {
		return Report{}, perr.Wrap(err, perr.ErrorCodeUnknown, "build literal automaton")
	}
	return check(func(s string) bool { return auto.IsMatch([]byte(s)) }, highlighted, background), nil
}

// Pattern compiles a rendered pattern and checks it as a regular expression.
// Surrounding double quotes added for the search box are stripped first
func Pattern(pattern string, highlighted, background []string) (Report, error) {
	pattern = Unquote(pattern)
	if pattern == "" {
		return check(func(string) bool { return false }, highlighted, background), nil
	}
	re, err := coregex.Compile(pattern)
	if err != nil {
		return Report{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "compile pattern %q", pattern)
	}
	return check(re.MatchString, highlighted, background), nil
}

// Unquote removes one pair of surrounding double quotes
func Unquote(pattern string) string {
	if len(pattern) >= 2 && strings.HasPrefix(pattern, `"`) && strings.HasSuffix(pattern, `"`) {
		return pattern[1 : len(pattern)-1]
	}
	return pattern
}
