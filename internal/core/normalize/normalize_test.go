package normalize

import (
	"slices"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "of the owl",
			out:  "of the owl",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'o', 'w', 'l', 0x80, ' ', 'x'}),
			out:  "owl x",
		},
		{
			name: "lower case",
			in:   "Of The Owl",
			out:  "of the owl",
		},
		{
			name: "keeps digits and punctuation",
			in:   "Alchemist's 1-3",
			out:  "alchemist's 1-3",
		},
		{
			name: "remove zero-widths",
			in:   "o\u200Bw\u200Dl",
			out:  "owl",
		},
		{
			name: "keeps accents composed",
			in:   "Größe café",
			out:  "größe café",
		},
		{
			name: "width fold fullwidth",
			in:   "ＯＷＬ flask",
			out:  "owl flask",
		},
		{
			name: "nfkc ligature",
			in:   "oﬃce",
			out:  "office",
		},
		{
			name: "controls dropped",
			in:   "ow\x00l\x7f\u0085",
			out:  "owl",
		},
		{
			name: "collapse whitespace",
			in:   "  a\t\tb\nc   d \r\n",
			out:  "a b c d",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.in)
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := n.Normalize(got); again != got {
				t.Fatalf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestAll_KeepsOrderDropsEmpty(t *testing.T) {
	got := New().All([]string{"Of The Owl", " \t ", "PERPETUAL", "\u200B"})
	want := []string{"of the owl", "perpetual"}
	if !slices.Equal(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
}

func TestSanitize(t *testing.T) {
	clean := "tab\tand\nlines"
	if got := Sanitize(clean); got != clean {
		t.Fatalf("clean input changed: %q", got)
	}
	if got := Sanitize("a\x01b\x7fc"); got != "abc" {
		t.Fatalf("Sanitize = %q, want abc", got)
	}
	if got := Sanitize(string([]byte{'a', 0xc3})); got != "a" {
		t.Fatalf("Sanitize must drop a truncated rune, got %q", got)
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	if got := collapseSpaces(in); got != "a b c" {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, "a b c")
	}
}
