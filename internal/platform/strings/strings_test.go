package strings

import (
	"slices"
	"testing"

	"github.com/kweimann/poe-stash-filter/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET"}
	if got := IfEmpty(nil, def); !slices.Equal(got, def) {
		t.Fatalf("nil -> %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); !slices.Equal(got, []string{"POST"}) {
		t.Fatalf("set -> %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("filters", "module name") != "filters" {
		t.Fatal("value changed")
	}
	testkit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{"/filters/": "/filters", " meta ": "/meta", "//a/b//": "/a/b"} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		testkit.MustPanic(t, func() { MustPrefix(in) })
	}
}
