// Package service contains filter synthesis workflows
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kweimann/poe-stash-filter/internal/core/normalize"
	"github.com/kweimann/poe-stash-filter/internal/core/render"
	"github.com/kweimann/poe-stash-filter/internal/core/synth"
	"github.com/kweimann/poe-stash-filter/internal/core/verify"
	"github.com/kweimann/poe-stash-filter/internal/modkit/repokit"
	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
	"github.com/kweimann/poe-stash-filter/internal/services/api/filters/domain"
	"github.com/kweimann/poe-stash-filter/internal/services/api/filters/repo"
)

// Service defines the service contract for filters
type Service interface {
	domain.ServicePort
	domain.SchemaPort
	RunStats(ctx context.Context, window time.Duration) (repo.RunStats, error)
}

// Config tunes synthesis limits
type Config struct {
	// DefaultMaxDepth applies when a request leaves max_depth unset
	DefaultMaxDepth int
	// MaxCorpus caps the corpus after normalization
	MaxCorpus int
	// ListLimit is the default page size of List
	ListLimit int
	// Registerer receives the synthesis metrics; nil leaves them unregistered
	Registerer prometheus.Registerer
}

// DefaultConfig mirrors the synthesizer defaults
func DefaultConfig() Config {
	return Config{DefaultMaxDepth: synth.DefaultMaxDepth, MaxCorpus: 20000, ListLimit: 20}
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	Runs repo.RunLog

	cfg     Config
	norm    *normalize.Normalizer
	log     *logger.Logger
	metrics *synthMetrics
	now     func() time.Time
}

// New creates a filters service. db and runs may be nil, synthesis then works without persistence
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], runs repo.RunLog, cfg Config) *Svc {
	def := DefaultConfig()
	if cfg.DefaultMaxDepth < 1 {
		cfg.DefaultMaxDepth = def.DefaultMaxDepth
	}
	if cfg.MaxCorpus < 1 {
		cfg.MaxCorpus = def.MaxCorpus
	}
	if cfg.ListLimit < 1 {
		cfg.ListLimit = def.ListLimit
	}

	s := &Svc{
		Runs:    runs,
		cfg:     cfg,
		norm:    normalize.New(),
		log:     logger.Named("filters"),
		metrics: newSynthMetrics(cfg.Registerer),
		now:     time.Now,
	}
	if db != nil {
		if binder == nil {
			panic("filters.Service requires a Repo binder when a TxRunner is given")
		}
		s.Repo = repokit.MustBind(binder, db)
	}
	return s
}

// EnsureSchema creates the postgres table and the clickhouse run log when configured
func (s *Svc) EnsureSchema(ctx context.Context) error {
	if s.Repo != nil {
		if err := s.Repo.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	if s.Runs != nil {
		if err := s.Runs.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize builds, verifies and optionally saves a filter
func (s *Svc) Synthesize(ctx context.Context, in domain.SynthesizeInput) (domain.Filter, error) {
	start := s.now()
	f, err := s.synthesize(ctx, in)
	s.metrics.observe(err, len(f.Parts), s.now().Sub(start))
	return f, err
}

func (s *Svc) synthesize(ctx context.Context, in domain.SynthesizeInput) (domain.Filter, error) {
	corpus, highlighted := in.Corpus, in.Highlighted
	if in.Normalize {
		corpus, highlighted = s.norm.All(corpus), s.norm.All(highlighted)
	}
	if len(corpus) > s.cfg.MaxCorpus {
		return domain.Filter{}, perr.WithField(
			perr.InvalidArgf("corpus has %d texts, limit is %d", len(corpus), s.cfg.MaxCorpus), "corpus")
	}
	if len(highlighted) == 0 {
		return domain.Filter{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "nothing is highlighted"), "highlighted")
	}
	if in.Save && s.Repo == nil {
		return domain.Filter{}, perr.Unavailablef("filter storage is not configured")
	}

	depth := in.MaxDepth
	if depth == 0 {
		depth = s.cfg.DefaultMaxDepth
	}

	start := s.now()
	res, err := synth.Explain(corpus, highlighted, synth.WithMaxDepth(depth))
	if err != nil {
		var nu *synth.NonUniqueTextError
		if errors.As(err, &nu) {
			return domain.Filter{}, perr.WithField(
				perr.Wrapf(err, perr.ErrorCodeValidation, "highlighted text %q cannot be selected alone", nu.Text),
				"highlighted")
		}
		return domain.Filter{}, err
	}
	elapsed := s.now().Sub(start)

	report, err := verify.Literals(res.Parts, highlighted, synth.Background(corpus, highlighted))
	if err != nil {
		return domain.Filter{}, err
	}
	if !report.OK() {
		return domain.Filter{}, perr.Wrap(report.Err(), perr.ErrorCodeUnknown, "synthesized filter failed verification")
	}

	pattern := render.Join(res.Parts, render.Options{Escape: in.Escape, Quote: in.Quote})
	f := domain.Filter{
		Name:            in.Name,
		Pattern:         pattern,
		Parts:           res.Parts,
		Length:          render.Length(pattern),
		MaxDepth:        depth,
		CorpusSize:      len(corpus),
		HighlightedSize: len(highlighted),
		CreatedAt:       s.now().UTC(),
	}
	if in.Explain {
		f.Steps = res.Steps
	}

	if in.Save {
		row, err := s.Repo.Insert(ctx, repo.NewFilter{
			Name:            f.Name,
			Pattern:         f.Pattern,
			Parts:           f.Parts,
			MaxDepth:        f.MaxDepth,
			CorpusSize:      f.CorpusSize,
			HighlightedSize: f.HighlightedSize,
		})
		if err != nil {
			return domain.Filter{}, err
		}
		f.ID, f.CreatedAt = row.ID, row.CreatedAt
	}

	s.logRun(ctx, f, elapsed)
	return f, nil
}

// logRun appends to the run log; failures never fail the request
func (s *Svc) logRun(ctx context.Context, f domain.Filter, elapsed time.Duration) {
	log := logger.C(ctx)
	log.Debug().
		Str("component", "filters").
		Int("corpus", f.CorpusSize).
		Int("highlighted", f.HighlightedSize).
		Int("parts", len(f.Parts)).
		Dur("elapsed", elapsed).
		Msg("filter synthesized")

	if s.Runs == nil {
		return
	}
	err := s.Runs.Append(ctx, repo.Run{
		FilterID:        f.ID,
		CreatedAt:       f.CreatedAt,
		CorpusSize:      f.CorpusSize,
		HighlightedSize: f.HighlightedSize,
		MaxDepth:        f.MaxDepth,
		Parts:           len(f.Parts),
		PatternLen:      f.Length,
		Elapsed:         elapsed,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("filter run log append failed")
	}
}

// Get returns a saved filter
func (s *Svc) Get(ctx context.Context, id string) (domain.Filter, error) {
	if s.Repo == nil {
		return domain.Filter{}, perr.Unavailablef("filter storage is not configured")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Filter{}, perr.WithField(perr.InvalidArgf("invalid filter id %q", id), "id")
	}
	row, err := s.Repo.Get(ctx, uid)
	if err != nil {
		return domain.Filter{}, err
	}
	return fromRow(row), nil
}

// List returns the most recent saved filters, newest first
func (s *Svc) List(ctx context.Context, limit int) ([]domain.Filter, error) {
	if s.Repo == nil {
		return nil, perr.Unavailablef("filter storage is not configured")
	}
	if limit <= 0 {
		limit = s.cfg.ListLimit
	}
	limit = min(limit, 100)

	rows, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Filter, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// RunStats summarizes runs in the trailing window
func (s *Svc) RunStats(ctx context.Context, window time.Duration) (repo.RunStats, error) {
	if s.Runs == nil {
		return repo.RunStats{}, perr.Unavailablef("run log is not configured")
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return s.Runs.Stats(ctx, s.now().Add(-window))
}

func fromRow(r repo.RowFilter) domain.Filter {
	return domain.Filter{
		ID:              r.ID,
		Name:            r.Name,
		Pattern:         r.Pattern,
		Parts:           r.Parts,
		Length:          render.Length(r.Pattern),
		MaxDepth:        r.MaxDepth,
		CorpusSize:      r.CorpusSize,
		HighlightedSize: r.HighlightedSize,
		CreatedAt:       r.CreatedAt,
	}
}
