package design

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-sleep/dsp/filter/biquad"
)

// Option configures a Designer.
type Option func(*config)

type config struct {
	cache  Cache
	logger *zap.Logger
}

func defaultConfig() config {
	return config{logger: zap.NewNop()}
}

// WithCache replaces the default in-memory cache.
func WithCache(c Cache) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.cache = c
		}
	}
}

// WithLogger sets the logger used for cache-miss debug records.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Stats reports cache effectiveness of a Designer.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Designer designs Butterworth filters and memoises them by spec.
// A Designer is safe for concurrent use. Equal specs always yield the same
// *biquad.SOS pointer, even when two goroutines race on the first design.
type Designer struct {
	cache  Cache
	logger *zap.Logger
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewDesigner returns a Designer with an empty cache unless WithCache is
// supplied.
func NewDesigner(opts ...Option) *Designer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.cache == nil {
		cfg.cache = NewCache()
	}

	return &Designer{cache: cfg.cache, logger: cfg.logger}
}

// Design returns the cached filter for spec, designing it on first use.
func (d *Designer) Design(spec Spec) (*biquad.SOS, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	key := spec.Key()
	if sos, ok := d.cache.Load(key); ok {
		d.hits.Add(1)

		return sos, nil
	}

	sos, err := design(spec)
	if err != nil {
		return nil, err
	}

	actual, loaded := d.cache.LoadOrStore(key, sos)
	if loaded {
		d.hits.Add(1)
	} else {
		d.misses.Add(1)
		d.logger.Debug("filter designed",
			zap.Stringer("kind", spec.Kind),
			zap.Int("order", spec.Order),
			zap.Float64s("cutoffs", spec.Cutoffs),
			zap.Float64("sample_rate", spec.SampleRate),
			zap.Int("sections", sos.NumSections()),
		)
	}

	return actual, nil
}

// Stats returns a snapshot of cache hits and misses.
func (d *Designer) Stats() Stats {
	return Stats{Hits: d.hits.Load(), Misses: d.misses.Load()}
}

// Butterworth designs a digital Butterworth filter without caching.
// Cutoffs are in Hz: one for Lowpass, two ascending for Bandpass.
func Butterworth(order int, cutoffs []float64, kind Kind, sampleRate float64) (*biquad.SOS, error) {
	spec := Spec{Order: order, Cutoffs: cutoffs, Kind: kind, SampleRate: sampleRate}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return design(spec)
}

func design(spec Spec) (*biquad.SOS, error) {
	sections, err := toSections(butterworthZPK(spec))
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrInvalidSpec, spec.Kind, err)
	}

	return biquad.NewSOS(sections), nil
}
