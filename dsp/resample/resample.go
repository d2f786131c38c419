package resample

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidFactor indicates a decimation factor below 2.
	ErrInvalidFactor = errors.New("resample: invalid decimation factor")
	// ErrInvalidRate indicates an invalid input sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

type config struct {
	antiAlias AntiAlias
}

// Option configures decimation.
type Option func(*config)

// WithAntiAlias selects the anti-aliasing strategy. The default is
// NewFIRAntiAlias().
func WithAntiAlias(a AntiAlias) Option {
	return func(cfg *config) {
		if a != nil {
			cfg.antiAlias = a
		}
	}
}

func defaultConfig() config {
	return config{antiAlias: NewFIRAntiAlias()}
}

// Decimator reduces the sample rate by a fixed integer factor.
// It holds no signal state and is safe for concurrent use.
type Decimator struct {
	factor    int
	antiAlias AntiAlias
}

// NewDecimator returns a Decimator for factor >= 2.
func NewDecimator(factor int, opts ...Option) (*Decimator, error) {
	if factor < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Decimator{factor: factor, antiAlias: cfg.antiAlias}, nil
}

// Factor returns the decimation factor.
func (d *Decimator) Factor() int { return d.factor }

// AntiAlias returns the anti-aliasing strategy in use.
func (d *Decimator) AntiAlias() AntiAlias { return d.antiAlias }

// OutputLength returns the decimated length for n input samples.
func (d *Decimator) OutputLength(n int) int {
	return (n + d.factor - 1) / d.factor
}

// Process anti-alias filters x, keeps every Factor-th sample starting with
// the first, and returns the result with the new sample rate. x is not
// modified.
func (d *Decimator) Process(x []float64, rate float64) ([]float64, float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, 0, fmt.Errorf("%w: %g", ErrInvalidRate, rate)
	}

	y, err := d.antiAlias.Decimate(x, d.factor)
	if err != nil {
		return nil, 0, err
	}

	return y, rate / float64(d.factor), nil
}

// Decimate is a one-shot helper for NewDecimator(factor, opts...).Process.
func Decimate(x []float64, factor int, rate float64, opts ...Option) ([]float64, float64, error) {
	d, err := NewDecimator(factor, opts...)
	if err != nil {
		return nil, 0, err
	}

	return d.Process(x, rate)
}
