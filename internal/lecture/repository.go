// Package lecture loads the immutable catalog of lecture question sets.
package lecture

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyCatalog is returned when no lecture could be loaded.
var ErrEmptyCatalog = errors.New("no lectures found")

// Config controls which lecture ids are attempted.
type Config struct {
	// MaxLectures bounds the ids tried: 1..MaxLectures.
	MaxLectures int

	// Concurrency is the number of fetches in flight. Values below 1 mean one.
	Concurrency int
}

// DefaultConfig returns the standard loader settings.
func DefaultConfig() Config {
	return Config{
		MaxLectures: 20,
		Concurrency: 4,
	}
}

// Repository loads lectures through a Fetcher.
type Repository struct {
	fetcher Fetcher
	cfg     Config
	logger  *zap.Logger
}

// NewRepository creates a Repository. A nil logger discards output.
func NewRepository(fetcher Fetcher, cfg Config, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Repository{fetcher: fetcher, cfg: cfg, logger: logger}
}

// LoadAll fetches every lecture id in range independently. A missing or
// malformed lecture is logged and skipped; the call returns once every
// fetch has settled, and fails only when nothing was loaded.
func (r *Repository) LoadAll(ctx context.Context) (*Catalog, error) {
	loaded := make([]*Lecture, r.cfg.MaxLectures)

	// Workers never return an error so one failure cannot cancel its siblings.
	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for id := 1; id <= r.cfg.MaxLectures; id++ {
		g.Go(func() error {
			lec, err := r.Load(ctx, id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					r.logger.Debug("lecture absent", zap.Int("lecture", id))
				} else {
					r.logger.Warn("failed to load lecture", zap.Int("lecture", id), zap.Error(err))
				}
				return nil
			}
			loaded[id-1] = &lec
			return nil
		})
	}
	_ = g.Wait()

	var lectures []Lecture
	for _, l := range loaded {
		if l != nil {
			lectures = append(lectures, *l)
		}
	}
	if len(lectures) == 0 {
		return nil, ErrEmptyCatalog
	}

	r.logger.Info("lectures loaded", zap.Int("count", len(lectures)))
	return NewCatalog(lectures...), nil
}

// Load fetches and decodes a single lecture.
func (r *Repository) Load(ctx context.Context, id int) (Lecture, error) {
	data, err := r.fetcher.Fetch(ctx, id)
	if err != nil {
		return Lecture{}, err
	}
	return Decode(id, data)
}
