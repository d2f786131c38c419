package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSamples is returned when fewer than 2 samples are given.
	ErrInsufficientSamples = errors.New("core: insufficient samples")
	// ErrLengthMismatch is returned when values and axis differ in length.
	ErrLengthMismatch = errors.New("core: length mismatch")
	// ErrNonIncreasingAxis is returned when the sample axis is not strictly increasing.
	ErrNonIncreasingAxis = errors.New("core: axis not strictly increasing")
)

// Gradient returns dy/dt sampled at t.
//
// Interior points use the second-order accurate centred difference for
// non-uniform spacing; the two end points use one-sided first differences.
func Gradient(y, t []float64) ([]float64, error) {
	n := len(y)
	if n != len(t) {
		return nil, fmt.Errorf("%w: %d values, %d axis points", ErrLengthMismatch, n, len(t))
	}

	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInsufficientSamples, n)
	}

	for i := 1; i < n; i++ {
		if !(t[i] > t[i-1]) {
			return nil, fmt.Errorf("%w: t[%d]=%g, t[%d]=%g", ErrNonIncreasingAxis, i-1, t[i-1], i, t[i])
		}
	}

	out := make([]float64, n)
	out[0] = (y[1] - y[0]) / (t[1] - t[0])
	out[n-1] = (y[n-1] - y[n-2]) / (t[n-1] - t[n-2])

	for i := 1; i < n-1; i++ {
		hs := t[i] - t[i-1]
		hd := t[i+1] - t[i]

		a := -hd / (hs * (hd + hs))
		b := (hd - hs) / (hs * hd)
		c := hs / (hd * (hd + hs))

		out[i] = a*y[i-1] + b*y[i] + c*y[i+1]
	}

	return out, nil
}
