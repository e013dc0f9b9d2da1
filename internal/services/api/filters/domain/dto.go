// Package domain holds DTOs for filters http and service contracts
package domain

import (
	"time"

	"github.com/kweimann/poe-stash-filter/internal/core/synth"
)

// SynthesizeInput is the request for building a filter
type SynthesizeInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,max=120" example:"owl flasks"`
	Corpus      []string `json:"corpus" validate:"required,min=1,max=20000,dive,max=512" example:"of the owl,of the dove,perpetual"`
	Highlighted []string `json:"highlighted" validate:"required,min=1,max=1000,dive,nonblank,max=512" example:"of the owl"`
	MaxDepth    int      `json:"max_depth,omitempty" validate:"omitempty,min=1,max=16" example:"5"`
	Normalize   bool     `json:"normalize,omitempty" example:"true"`
	Escape      bool     `json:"escape,omitempty" example:"false"`
	Quote       bool     `json:"quote,omitempty" example:"false"`
	Explain     bool     `json:"explain,omitempty" example:"false"`
	Save        bool     `json:"save,omitempty" example:"false"`
}

// Filter is a synthesized stash search filter
type Filter struct {
	ID              string       `json:"id,omitempty" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427"`
	Name            string       `json:"name,omitempty" example:"owl flasks"`
	Pattern         string       `json:"pattern" example:"ow"`
	Parts           []string     `json:"parts" example:"ow"`
	Length          int          `json:"length" example:"2"`
	MaxDepth        int          `json:"max_depth" example:"5"`
	CorpusSize      int          `json:"corpus_size" example:"3"`
	HighlightedSize int          `json:"highlighted_size" example:"1"`
	Steps           []synth.Step `json:"steps,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
