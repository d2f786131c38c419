// Package synth generates deterministic LFP and accelerometer recordings with
// a known sleep structure for tests and demos.
//
// The LFP is split into thirds: noise, delta and theta oscillations over
// noise, noise. The accelerometer is split into quarters that alternate
// between rest and activity.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Config describes a synthetic recording.
type Config struct {
	// Duration in seconds.
	Duration float64
	// SampleRate in Hz.
	SampleRate float64
	// Noise is the standard deviation of the background noise in both
	// channels and of the resting accelerometer.
	Noise float64
	// Components is the number of sines per band.
	Components int
	// DeltaRange and ThetaRange bound the uniformly drawn sine frequencies.
	DeltaRange [2]float64
	ThetaRange [2]float64
	// ActivityMean is the accelerometer offset while the animal moves.
	// Activity noise has unit standard deviation.
	ActivityMean float64
}

// DefaultConfig returns a 60 s recording at 20 kHz with unit noise.
func DefaultConfig() Config {
	return Config{
		Duration:     60,
		SampleRate:   20000,
		Noise:        1,
		Components:   5,
		DeltaRange:   [2]float64{1, 3},
		ThetaRange:   [2]float64{4, 7},
		ActivityMean: 3,
	}
}

// Validate reports whether cfg describes a usable recording.
func (c Config) Validate() error {
	switch {
	case !(c.Duration > 0) || math.IsInf(c.Duration, 0):
		return fmt.Errorf("synth: invalid duration %g", c.Duration)
	case !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0):
		return fmt.Errorf("synth: invalid sample rate %g", c.SampleRate)
	case c.Noise < 0 || math.IsNaN(c.Noise):
		return fmt.Errorf("synth: invalid noise scale %g", c.Noise)
	case c.Components < 0:
		return fmt.Errorf("synth: invalid component count %d", c.Components)
	case !(c.DeltaRange[0] < c.DeltaRange[1]), !(c.ThetaRange[0] < c.ThetaRange[1]):
		return fmt.Errorf("synth: invalid frequency range")
	}

	return nil
}

// Length returns the number of samples Generate produces for cfg.
func (c Config) Length() int {
	return int(math.Round(c.Duration * c.SampleRate))
}

// NewSource returns a seeded PCG generator.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns an LFP trace and an accelerometer trace of cfg.Length()
// samples each. Identical rng state yields identical output.
func Generate(cfg Config, rng *rand.Rand) (lfp, acc []float64, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if rng == nil {
		return nil, nil, fmt.Errorf("synth: nil random source")
	}

	n := cfg.Length()
	third := n / 3
	fourth := n / 4

	rest := distuv.Normal{Mu: 0, Sigma: cfg.Noise, Src: rng}
	active := distuv.Normal{Mu: cfg.ActivityMean, Sigma: 1, Src: rng}

	acc = make([]float64, n)
	for i := range acc {
		if q := i / max(fourth, 1); q == 1 || q >= 3 {
			acc[i] = active.Rand()
		} else {
			acc[i] = rest.Rand()
		}
	}

	// Time axis runs from 0 to Duration inclusive.
	dt := 0.0
	if n > 1 {
		dt = cfg.Duration / float64(n-1)
	}

	lfp = make([]float64, n)
	for _, r := range [][2]float64{cfg.DeltaRange, cfg.ThetaRange} {
		freq := distuv.Uniform{Min: r[0], Max: r[1], Src: rng}
		for range cfg.Components {
			w := 2 * math.Pi * freq.Rand() * dt
			for i := third; i < 2*third; i++ {
				lfp[i] += math.Sin(w * float64(i))
			}
		}
	}

	for i := range lfp {
		lfp[i] += rest.Rand()
	}

	return lfp, acc, nil
}

// Segment is a half-open sample range [Start, End).
type Segment struct {
	Name       string
	Start, End int
}

// Thirds returns the LFP layout for n samples.
func Thirds(n int) []Segment {
	t := n / 3

	return []Segment{
		{Name: "noise", Start: 0, End: t},
		{Name: "delta+theta", Start: t, End: 2 * t},
		{Name: "noise", Start: 2 * t, End: n},
	}
}

// Quarters returns the accelerometer layout for n samples.
func Quarters(n int) []Segment {
	q := n / 4

	return []Segment{
		{Name: "rest", Start: 0, End: q},
		{Name: "active", Start: q, End: 2 * q},
		{Name: "rest", Start: 2 * q, End: 3 * q},
		{Name: "active", Start: 3 * q, End: n},
	}
}
