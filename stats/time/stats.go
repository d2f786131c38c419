// Package time provides whole-signal time-domain statistics.
//
// All statistics are population statistics over the complete signal; there
// are no rolling windows.
package time

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned for zero-length signals.
	ErrEmptyInput = errors.New("stats: empty input")
	// ErrZeroVariance is returned when a signal has exactly zero variance.
	ErrZeroVariance = errors.New("stats: zero variance")
)

// Summary holds basic time-domain signal statistics.
type Summary struct {
	Length int
	Mean   float64
	Std    float64 // population standard deviation
	RMS    float64
	Min    float64
	MinPos int
	Max    float64
	MaxPos int
}

// Summarize computes a Summary of signal. An empty signal yields a zero
// Summary.
func Summarize(signal []float64) Summary {
	if len(signal) == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(signal, nil)

	return Summary{
		Length: len(signal),
		Mean:   mean,
		Std:    std,
		RMS:    RMS(signal),
		Min:    floats.Min(signal),
		MinPos: floats.MinIdx(signal),
		Max:    floats.Max(signal),
		MaxPos: floats.MaxIdx(signal),
	}
}

// RMS returns the root mean square of signal, or 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return floats.Norm(signal, 2) / math.Sqrt(float64(len(signal)))
}

// ZScore returns (x - mean) / std using the population standard deviation.
// A signal with exactly zero variance fails with ErrZeroVariance; any
// nonzero variance, however small, is normalised.
func ZScore(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	mean, std := stat.PopMeanStdDev(signal, nil)
	if std == 0 {
		return nil, fmt.Errorf("%w: constant value %g over %d samples", ErrZeroVariance, mean, len(signal))
	}

	if math.IsNaN(std) || math.IsInf(std, 0) {
		return nil, fmt.Errorf("stats: non-finite standard deviation %g", std)
	}

	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = (v - mean) / std
	}

	return out, nil
}
