// Package synth computes the literal substrings that, joined as an alternation, select every
// highlighted text of a corpus and nothing else.
//
// Algorithm
// 1 Background = corpus minus highlighted texts (exact value)
// 2 Insert every background window (rune offset i, length <= MaxDepth) into a trie
// 3 Reject highlighted texts whose windows are all already in the trie
// 4 Insert every highlighted window
// 5 Greedy cover: unmark nodes reachable from background windows, propagate marks bottom-up,
// pick the marked node matching the most remaining texts per rune, repeat until covered
package synth

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kweimann/poe-stash-filter/internal/core/trie"
	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// DefaultMaxDepth is the window length used when no option overrides it
const DefaultMaxDepth = 5

// Options controls synthesis
type Options struct {
	// MaxDepth bounds the window length sampled at each offset and thus the trie depth
	MaxDepth int
}

// Option mutates Options
type Option func(*Options)

// WithMaxDepth sets the window length; Explain rejects anything below 1
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// Step records one greedy selection
type Step struct {
	Text    string   `json:"text"`
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
}

// Result is the ordered selection plus how each part was chosen
type Result struct {
	Parts []string `json:"parts"`
	Steps []Step   `json:"steps"`
}

// Synthesize returns the ordered substrings covering highlighted but no other corpus text
func Synthesize(corpus, highlighted []string, opts ...Option) ([]string, error) {
	res, err := Explain(corpus, highlighted, opts...)
	if err != nil {
		return nil, err
	}
	return res.Parts, nil
}

// Explain is Synthesize with the per-step scores and matched texts
func Explain(corpus, highlighted []string, opts ...Option) (Result, error) {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, fn := range opts {
		fn(&o)
	}
	if o.MaxDepth < 1 {
		return Result{}, perr.InvalidArgf("max depth must be at least 1, got %d", o.MaxDepth)
	}

	s := newSynthesizer(corpus, highlighted, o.MaxDepth)
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	s.extend()
	return s.cover()
}

// synthesizer owns one trie for the duration of one call
type synthesizer struct {
	depth     int
	root      *trie.Node
	remaining []string
	bgWindows []string
}

// Background returns the corpus texts not present by exact value in highlighted, in corpus order
func Background(corpus, highlighted []string) []string {
	hl := make(map[string]struct{}, len(highlighted))
	for _, h := range highlighted {
		hl[h] = struct{}{}
	}
	out := make([]string, 0, len(corpus))
	for _, text := range corpus {
		if _, ok := hl[text]; !ok {
			out = append(out, text)
		}
	}
	return out
}

func newSynthesizer(corpus, highlighted []string, depth int) *synthesizer {
	s := &synthesizer{
		depth:     depth,
		root:      trie.New(),
		remaining: slices.Clone(highlighted),
	}
	for _, text := range Background(corpus, highlighted) {
		for w := range windows(text, depth) {
			s.root.Add(w)
			s.bgWindows = append(s.bgWindows, w)
		}
	}
	return s
}

// validate must run before highlighted windows are inserted
func (s *synthesizer) validate() error {
	for _, text := range s.remaining {
		unique := false
		for w := range windows(text, s.depth) {
			if !s.root.Traversable(w) {
				unique = true
				break
			}
		}
		if !unique {
			return &NonUniqueTextError{Text: text}
		}
	}
	return nil
}

func (s *synthesizer) extend() {
	for _, text := range s.remaining {
		for w := range windows(text, s.depth) {
			s.root.Add(w)
		}
	}
}

func (s *synthesizer) cover() (Result, error) {
	res := Result{Parts: []string{}, Steps: []Step{}}
	for len(s.remaining) > 0 {
		if err := s.mark(); err != nil {
			return Result{}, err
		}
		best, ok := s.best()
		if !ok || len(best.matched) == 0 {
			return Result{}, perr.Internalf("no discriminating substring left for %d texts", len(s.remaining))
		}
		res.Parts = append(res.Parts, best.text)
		res.Steps = append(res.Steps, Step{
			Text:    best.text,
			Score:   float64(len(best.matched)) / float64(best.runes),
			Matched: best.matched,
		})
		s.remaining = slices.DeleteFunc(s.remaining, func(t string) bool {
			return strings.Contains(t, best.text)
		})
	}
	return res, nil
}

// mark resets every node to candidate, clears nodes reachable from the background,
// then propagates so only subtrees untouched by the background stay marked
func (s *synthesizer) mark() error {
	s.root.SetHighlighted(true)
	for _, w := range s.bgWindows {
		for node, err := range s.root.Traverse(w) {
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeUnknown, "background window %q", w)
			}
			node.Highlighted = false
		}
	}
	s.root.PropagateHighlight()
	return nil
}

type candidate struct {
	text    string
	runes   int
	matched []string
}

// beats orders by matched texts per rune, then by the larger text
func (c candidate) beats(o candidate) bool {
	lhs, rhs := len(c.matched)*o.runes, len(o.matched)*c.runes
	if lhs != rhs {
		return lhs > rhs
	}
	return c.text > o.text
}

func (s *synthesizer) best() (candidate, bool) {
	var (
		best  candidate
		found bool
	)
	for node := range s.root.DFS() {
		// the root spells nothing and cannot be scored
		if !node.Highlighted || node.Text == "" {
			continue
		}
		c := candidate{
			text:    node.Text,
			runes:   utf8.RuneCountInString(node.Text),
			matched: matching(s.remaining, node.Text),
		}
		if !found || c.beats(best) {
			best, found = c, true
		}
	}
	return best, found
}

func matching(texts []string, sub string) []string {
	var out []string
	for _, t := range texts {
		if strings.Contains(t, sub) {
			out = append(out, t)
		}
	}
	return out
}

// windows yields text[i:i+depth] for every rune offset i, shorter at the tail
func windows(text string, depth int) iter.Seq[string] {
	return func(yield func(string) bool) {
		rs := []rune(text)
		for i := range rs {
			if !yield(string(rs[i:min(i+depth, len(rs))])) {
				return
			}
		}
	}
}
