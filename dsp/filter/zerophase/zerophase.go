// Package zerophase implements forward-backward IIR filtering.
//
// Filtering once forward and once backward cancels the phase response, so
// features stay time-aligned with the input, and squares the magnitude
// response. Edge transients are suppressed with odd-symmetric padding and
// steady-state initial conditions.
package zerophase

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-sleep/dsp/filter/biquad"
)

// ErrInvalidInput is returned when the signal is too short to pad.
var ErrInvalidInput = errors.New("zerophase: invalid input")

// PadLength returns the number of samples reflected at each edge.
// It is three times the number of coefficients of the equivalent
// transfer function, less trailing zeros shared by all first-order sections.
func PadLength(sos *biquad.SOS) int {
	n := sos.NumSections()

	zeroB2, zeroA2 := 0, 0
	for i := range n {
		c := sos.Section(i)
		if c.B2 == 0 {
			zeroB2++
		}

		if c.A2 == 0 {
			zeroA2++
		}
	}

	return 3 * (2*n + 1 - min(zeroB2, zeroA2))
}

// MinLength returns the shortest signal Apply accepts for sos.
func MinLength(sos *biquad.SOS) int {
	return PadLength(sos) + 1
}

// Apply filters x forward then backward through sos and returns a new
// signal of the same length. x is not modified.
func Apply(sos *biquad.SOS, x []float64) ([]float64, error) {
	if sos == nil || sos.NumSections() == 0 {
		return nil, fmt.Errorf("%w: empty filter", ErrInvalidInput)
	}

	edge := PadLength(sos)
	if len(x) <= edge {
		return nil, fmt.Errorf("%w: length %d, need more than %d samples", ErrInvalidInput, len(x), edge)
	}

	ext := oddExtend(x, edge)
	zi := sos.StepState()
	chain := sos.NewChain()

	chain.SetScaledState(zi, ext[0])
	chain.ProcessBlock(ext)

	slices.Reverse(ext)
	chain.SetScaledState(zi, ext[0])
	chain.ProcessBlock(ext)
	slices.Reverse(ext)

	return ext[edge : edge+len(x) : edge+len(x)], nil
}

// oddExtend pads x by n samples on both ends with its point reflection
// about the edge samples. The result is a fresh slice.
func oddExtend(x []float64, n int) []float64 {
	last := len(x) - 1
	out := make([]float64, len(x)+2*n)

	for i := range n {
		out[i] = 2*x[0] - x[n-i]
		out[n+len(x)+i] = 2*x[last] - x[last-1-i]
	}

	copy(out[n:], x)

	return out
}
