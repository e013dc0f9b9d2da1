package verify

import (
	"slices"
	"testing"

	"github.com/kweimann/poe-stash-filter/internal/core/render"
	"github.com/kweimann/poe-stash-filter/internal/core/synth"
	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/testkit"
)

func TestLiterals(t *testing.T) {
	r, err := Literals([]string{"l"}, []string{"apple"}, []string{"apricot"})
	if err != nil {
		t.Fatalf("Literals: %v", err)
	}
	if !r.OK() || r.Err() != nil {
		t.Fatalf("expected OK, got %+v", r)
	}

	r, err = Literals([]string{"ap"}, []string{"apple", "owl"}, []string{"apricot"})
	if err != nil {
		t.Fatalf("Literals: %v", err)
	}
	if !slices.Equal(r.Uncovered, []string{"owl"}) || !slices.Equal(r.Leaked, []string{"apricot"}) {
		t.Fatalf("unexpected report %+v", r)
	}
	err = r.Err()
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	testkit.MustContain(t, err.Error(), `first "owl"`)
	testkit.MustContain(t, err.Error(), `first "apricot"`)
}

func TestLiterals_NoParts(t *testing.T) {
	r, err := Literals(nil, nil, []string{"apricot"})
	if err != nil || !r.OK() {
		t.Fatalf("empty selection of nothing must be OK: %+v %v", r, err)
	}
	r, _ = Literals(nil, []string{"apple"}, nil)
	if r.OK() {
		t.Fatalf("highlighted text without parts must be uncovered")
	}
}

func TestLiterals_EmptyPartRejected(t *testing.T) {
	_, err := Literals([]string{""}, []string{"a"}, nil)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestPattern(t *testing.T) {
	r, err := Pattern(`"f t|ov"`, []string{"of the dove", "of the owl"}, []string{"perpetual"})
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if !r.OK() {
		t.Fatalf("expected OK, got %+v", r)
	}

	_, err = Pattern("(", nil, nil)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument for a broken pattern, got %v", err)
	}
}

func TestPattern_EscapedMetacharacters(t *testing.T) {
	highlighted := []string{"a.b"}
	background := []string{"axb"}
	if r, _ := Pattern("a.b", highlighted, background); r.OK() {
		t.Fatalf("unescaped dot must leak into axb")
	}
	r, err := Pattern(render.Join([]string{"a.b"}, render.Options{Escape: true}), highlighted, background)
	if err != nil || !r.OK() {
		t.Fatalf("escaped pattern must be exact: %+v %v", r, err)
	}
}

func TestUnquote(t *testing.T) {
	for in, want := range map[string]string{`"a|b"`: "a|b", "a|b": "a|b", `"`: `"`, `""`: ""} {
		if got := Unquote(in); got != want {
			t.Fatalf("Unquote(%q) = %q, want %q", in, got, want)
		}
	}
}

// synthesized filters hold both properties whether checked as literals or as a compiled pattern
func TestSynthesizedFilterRoundTrip(t *testing.T) {
	corpus := []string{
		"of the owl", "of the dove", "perpetual", "alchemist's", "chemist's",
		"of the impala", "of the hawk", "experimenter's", "of heat", "(ice) of the eagle",
	}
	highlighted := []string{"of the owl", "(ice) of the eagle", "alchemist's"}
	var background []string
	for _, c := range corpus {
		if !slices.Contains(highlighted, c) {
			background = append(background, c)
		}
	}

	parts, err := synth.Synthesize(corpus, highlighted)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	r, err := Literals(parts, highlighted, background)
	if err != nil || !r.OK() {
		t.Fatalf("literal check failed: %+v %v", r, err)
	}
	pattern := render.Join(parts, render.Options{Escape: true})
	r, err = Pattern(pattern, highlighted, background)
	if err != nil || !r.OK() {
		t.Fatalf("pattern %q check failed: %+v %v", pattern, r, err)
	}
}
