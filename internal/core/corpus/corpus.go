// Package corpus loads the texts a filter is synthesized from
// A corpus is either a plain lines file (one text per line) or a preset bundling
// the corpus with the highlighted subset in JSON or YAML
package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// maxLine bounds one text; item descriptions are far shorter
const maxLine = 64 * 1024

// ReadLines returns one trimmed text per line, skipping blank lines
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)

	var out []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read lines")
	}
	return out, nil
}

// LoadLines reads a lines file
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open %s", path)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, perr.WithOp(err, path)
	}
	return lines, nil
}
