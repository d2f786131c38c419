package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/spectral"

	"github.com/cwbudde/algo-sleep/dsp/window"
)

// ErrInvalidInput is returned for signals or parameters Welch cannot use.
var ErrInvalidInput = errors.New("spectrum: invalid input")

const defaultSegmentLength = 2048

type config struct {
	segment int
	overlap float64
	window  window.Type
}

// Option configures Welch.
type Option func(*config)

// WithSegmentLength sets the samples per periodogram segment. Odd or
// non-positive values are ignored.
func WithSegmentLength(n int) Option {
	return func(c *config) {
		if n > 0 && n%2 == 0 {
			c.segment = n
		}
	}
}

// WithOverlap sets the fraction of each segment shared with the next,
// in [0, 1).
func WithOverlap(fraction float64) Option {
	return func(c *config) {
		if fraction >= 0 && fraction < 1 {
			c.overlap = fraction
		}
	}
}

// WithWindow selects the segment taper. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

func defaultConfig() config {
	return config{segment: defaultSegmentLength, overlap: 0.5, window: window.TypeHann}
}

// PSD is a one-sided power spectral density.
type PSD struct {
	Freqs   []float64 // Hz, 0 to Nyquist
	Density []float64 // power per Hz
}

// Welch estimates the PSD of x sampled at rate. Signals shorter than the
// segment length use a single segment of the largest even length that fits.
func Welch(x []float64, rate float64, opts ...Option) (PSD, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return PSD{}, fmt.Errorf("%w: sample rate %g", ErrInvalidInput, rate)
	}

	if len(x) < 4 {
		return PSD{}, fmt.Errorf("%w: %d samples", ErrInvalidInput, len(x))
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	seg := min(cfg.segment, len(x)&^1)
	wt := cfg.window

	density, freqs := spectral.Pwelch(x, rate, &spectral.PwelchOptions{
		NFFT:     seg,
		Noverlap: int(cfg.overlap * float64(seg)),
		Window: func(n int) []float64 {
			return window.Generate(wt, n, window.WithPeriodic())
		},
	})

	return PSD{Freqs: freqs, Density: density}, nil
}

// Resolution returns the bin spacing in Hz.
func (p PSD) Resolution() float64 {
	if len(p.Freqs) < 2 {
		return 0
	}

	return p.Freqs[1] - p.Freqs[0]
}

// BandPower integrates the density over bins with low <= f < high.
func (p PSD) BandPower(low, high float64) float64 {
	df := p.Resolution()

	sum := 0.0
	for i, f := range p.Freqs {
		if f >= low && f < high {
			sum += p.Density[i]
		}
	}

	return sum * df
}

// Band is a named frequency range.
type Band struct {
	Name      string
	Low, High float64
}

// BandPSD estimates the PSD of x and returns the power in each band.
func BandPSD(x []float64, rate float64, bands []Band, opts ...Option) ([]float64, error) {
	psd, err := Welch(x, rate, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(bands))
	for i, b := range bands {
		out[i] = psd.BandPower(b.Low, b.High)
	}

	return out, nil
}

// Dominant returns the index of the band holding the most power, or -1 if
// bands is empty.
func (p PSD) Dominant(bands []Band) int {
	best, bestPower := -1, math.Inf(-1)

	for i, b := range bands {
		if pw := p.BandPower(b.Low, b.High); pw > bestPower {
			best, bestPower = i, pw
		}
	}

	return best
}
