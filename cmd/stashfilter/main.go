// Command stashfilter prints the shortest stash search filter that selects the highlighted texts
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kweimann/poe-stash-filter/internal/core/corpus"
	"github.com/kweimann/poe-stash-filter/internal/core/normalize"
	"github.com/kweimann/poe-stash-filter/internal/core/render"
	"github.com/kweimann/poe-stash-filter/internal/core/synth"
	"github.com/kweimann/poe-stash-filter/internal/core/verify"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	corpus    string
	highlight string
	preset    string
	depth     int
	sep       string
	escape    bool
	quote     bool
	normalize bool
	explain   bool
	verify    bool
	json      bool
}

// output is what -json prints
type output struct {
	Pattern string         `json:"pattern"`
	Parts   []string       `json:"parts"`
	Length  int            `json:"length"`
	Steps   []synth.Step   `json:"steps,omitempty"`
	Verify  *verify.Report `json:"verify,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stashfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.corpus, "corpus", "", "lines file with every text in the stash")
	fs.StringVar(&o.highlight, "highlight", "", "lines file with the texts to select")
	fs.StringVar(&o.preset, "preset", "", "json or yaml preset with corpus and highlighted")
	fs.IntVar(&o.depth, "depth", synth.DefaultMaxDepth, "window length sampled per offset")
	fs.StringVar(&o.sep, "sep", render.DefaultSeparator, "separator between parts")
	fs.BoolVar(&o.escape, "escape", false, "quote regex metacharacters in parts")
	fs.BoolVar(&o.quote, "quote", false, "wrap the pattern in double quotes")
	fs.BoolVar(&o.normalize, "normalize", true, "fold case and whitespace before synthesis")
	fs.BoolVar(&o.explain, "explain", false, "print each greedy step")
	fs.BoolVar(&o.verify, "verify", false, "compile the pattern and check it against the corpus")
	fs.BoolVar(&o.json, "json", false, "print the result as json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	depthSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "depth" {
			depthSet = true
		}
	})

	if err := synthesize(o, depthSet, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func synthesize(o options, depthSet bool, stdout io.Writer) error {
	log := logger.Named("stashfilter")

	all, highlighted, depth, err := load(o)
	if err != nil {
		return err
	}
	if depthSet || depth == 0 {
		depth = o.depth
	}
	if o.normalize {
		n := normalize.New()
		all, highlighted = n.All(all), n.All(highlighted)
	}

	start := time.Now()
	res, err := synth.Explain(all, highlighted, synth.WithMaxDepth(depth))
	if err != nil {
		return err
	}
	log.Debug().
		Int("corpus", len(all)).
		Int("highlighted", len(highlighted)).
		Int("depth", depth).
		Int("parts", len(res.Parts)).
		Dur("elapsed", time.Since(start)).
		Msg("synthesized")

	pattern := render.Join(res.Parts, render.Options{Separator: o.sep, Escape: o.escape, Quote: o.quote})

	var report *verify.Report
	if o.verify {
		r, err := verify.Pattern(pattern, highlighted, synth.Background(all, highlighted))
		if err != nil {
			return err
		}
		if err := r.Err(); err != nil {
			return err
		}
		report = &r
	}

	if o.json {
		out := output{Pattern: pattern, Parts: res.Parts, Length: render.Length(pattern), Verify: report}
		if o.explain {
			out.Steps = res.Steps
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if o.explain {
		for i, s := range res.Steps {
			_, _ = fmt.Fprintf(stdout, "%d\t%q\tscore=%g\tmatched=%d\n", i+1, s.Text, s.Score, len(s.Matched))
		}
	}
	_, err = fmt.Fprintln(stdout, pattern)
	return err
}

// load returns corpus, highlighted and the preset depth, zero when none is given
func load(o options) ([]string, []string, int, error) {
	if o.preset != "" {
		p, err := corpus.LoadPreset(o.preset)
		if err != nil {
			return nil, nil, 0, err
		}
		return p.Corpus, p.Highlighted, p.MaxDepth, nil
	}
	if o.corpus == "" || o.highlight == "" {
		return nil, nil, 0, errors.New("either -preset or both -corpus and -highlight are required")
	}
	all, err := corpus.LoadLines(o.corpus)
	if err != nil {
		return nil, nil, 0, err
	}
	highlighted, err := corpus.LoadLines(o.highlight)
	if err != nil {
		return nil, nil, 0, err
	}
	return all, highlighted, 0, nil
}
