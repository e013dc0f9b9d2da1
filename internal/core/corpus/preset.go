package corpus

import (
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/kweimann/poe-stash-filter/internal/core/normalize"
	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// Preset is a named corpus with its highlighted subset
type Preset struct {
	Name        string   `json:"name"`
	Corpus      []string `json:"corpus"`
	Highlighted []string `json:"highlighted"`
	// MaxDepth zero means the synthesizer default
	MaxDepth int `json:"max_depth,omitempty"`
}

// ParsePreset decodes JSON or YAML; YAML is converted to JSON so json tags apply to both
func ParsePreset(data []byte) (Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, perr.Wrap(err, perr.ErrorCodeJSON, "parse preset")
	}
	return p, nil
}

// LoadPreset reads and validates a .json, .yaml or .yml preset file
func LoadPreset(path string) (Preset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return Preset{}, perr.InvalidArgf("unsupported preset extension %q", filepath.Ext(path))
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "read preset %s", path)
	}
	p, err := ParsePreset(buf)
	if err != nil {
		return Preset{}, perr.WithOp(err, path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, p.Validate()
}

// Validate checks the fields the synthesizer cannot default
func (p Preset) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "preset name is required"), "name")
	case len(p.Corpus) == 0:
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "corpus is empty"), "corpus")
	case len(p.Highlighted) == 0:
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "nothing is highlighted"), "highlighted")
	case p.MaxDepth < 0:
		return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "max depth %d is negative", p.MaxDepth), "max_depth")
	}
	return nil
}

// Normalize folds both lists with n
func (p Preset) Normalize(n *normalize.Normalizer) Preset {
	p.Corpus = n.All(p.Corpus)
	p.Highlighted = n.All(p.Highlighted)
	return p
}
