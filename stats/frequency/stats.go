// Package frequency summarises one-sided power spectra.
//
// Spectra are given as parallel frequency and density slices, as produced by
// a Welch estimate. Every descriptor can be restricted to a frequency range.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrLengthMismatch is returned when frequency and density differ in length.
	ErrLengthMismatch = errors.New("frequency: length mismatch")
	// ErrEmptyRange is returned when no bin falls inside the requested range.
	ErrEmptyRange = errors.New("frequency: no bins in range")
)

// Stats holds shape descriptors of a power spectrum.
type Stats struct {
	Bins      int
	Power     float64 // total power, density integrated over the range
	PeakFreq  float64 // Hz
	Peak      float64 // density at PeakFreq
	Centroid  float64 // power-weighted mean frequency, Hz
	Spread    float64 // power-weighted standard deviation around Centroid, Hz
	Flatness  float64 // geometric over arithmetic mean density, 0..1
	Rolloff   float64 // frequency below which 85% of the power lies, Hz
	Bandwidth float64 // width of the peak at half power, Hz
}

// RolloffFraction is the power fraction used for Stats.Rolloff.
const RolloffFraction = 0.85

// Calculate summarises the bins with low <= f < high.
func Calculate(freqs, density []float64, low, high float64) (Stats, error) {
	f, d, err := restrict(freqs, density, low, high)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{Bins: len(d)}

	df := resolution(freqs)
	total := floats.Sum(d)
	s.Power = total * df

	peak := floats.MaxIdx(d)
	s.PeakFreq, s.Peak = f[peak], d[peak]

	if total > 0 {
		s.Centroid = floats.Dot(f, d) / total
		s.Spread = spread(f, d, s.Centroid, total)
		s.Rolloff = rolloff(f, d, RolloffFraction*total)
		s.Bandwidth = halfPowerWidth(f, d, peak)
	}

	s.Flatness = Flatness(d)

	return s, nil
}

// PeakFrequency returns the frequency of the largest density with
// low <= f < high.
func PeakFrequency(freqs, density []float64, low, high float64) (float64, error) {
	f, d, err := restrict(freqs, density, low, high)
	if err != nil {
		return 0, err
	}

	return f[floats.MaxIdx(d)], nil
}

// Flatness returns the spectral flatness (Wiener entropy) of density.
// Any zero bin makes the geometric mean, and so the flatness, zero.
func Flatness(density []float64) float64 {
	if len(density) == 0 {
		return 0
	}

	mean := floats.Sum(density) / float64(len(density))
	if mean <= 0 {
		return 0
	}

	logSum := 0.0
	for _, v := range density {
		if v <= 0 {
			return 0
		}

		logSum += math.Log(v)
	}

	return math.Exp(logSum/float64(len(density))) / mean
}

func restrict(freqs, density []float64, low, high float64) ([]float64, []float64, error) {
	if len(freqs) != len(density) {
		return nil, nil, fmt.Errorf("%w: %d frequencies, %d densities", ErrLengthMismatch, len(freqs), len(density))
	}

	start, end := -1, -1

	for i, f := range freqs {
		if f >= low && f < high {
			if start < 0 {
				start = i
			}

			end = i + 1
		}
	}

	if start < 0 {
		return nil, nil, fmt.Errorf("%w: [%g, %g) Hz", ErrEmptyRange, low, high)
	}

	return freqs[start:end], density[start:end], nil
}

func resolution(freqs []float64) float64 {
	if len(freqs) < 2 {
		return 0
	}

	return freqs[1] - freqs[0]
}

func spread(f, d []float64, centroid, total float64) float64 {
	sum := 0.0
	for i, v := range d {
		diff := f[i] - centroid
		sum += diff * diff * v
	}

	return math.Sqrt(sum / total)
}

func rolloff(f, d []float64, threshold float64) float64 {
	cum := 0.0
	for i, v := range d {
		cum += v
		if cum >= threshold {
			return f[i]
		}
	}

	return f[len(f)-1]
}

// halfPowerWidth walks out from the peak to the first bins at or below half
// the peak density, interpolating linearly between neighbours.
func halfPowerWidth(f, d []float64, peak int) float64 {
	half := d[peak] / 2

	lower := f[0]
	for i := peak; i >= 1; i-- {
		if d[i-1] <= half {
			lower = crossing(f[i-1], f[i], d[i-1], d[i], half)

			break
		}
	}

	upper := f[len(f)-1]
	for i := peak; i < len(d)-1; i++ {
		if d[i+1] <= half {
			upper = crossing(f[i], f[i+1], d[i], d[i+1], half)

			break
		}
	}

	return upper - lower
}

func crossing(f0, f1, d0, d1, level float64) float64 {
	if d1 == d0 {
		return (f0 + f1) / 2
	}

	return f0 + (level-d0)/(d1-d0)*(f1-f0)
}
