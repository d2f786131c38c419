package hilbert

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrEmptyInput is returned for zero-length signals.
var ErrEmptyInput = errors.New("hilbert: empty input")

// Analytic returns the analytic signal of x. The transform length equals
// len(x); no padding is applied, so the signal is treated as one period.
// Any length is accepted; lengths with large prime factors use a chirp-z
// plan and stay O(n log n).
func Analytic(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	if n == 1 {
		return []complex128{complex(x[0], 0)}, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("hilbert: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	spec := make([]complex128, n)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("hilbert: forward FFT failed: %w", err)
	}

	// DC and, for even n, Nyquist keep unit weight; the other positive
	// bins are doubled and the negative half is zeroed.
	half := (n + 1) / 2
	for k := 1; k < half; k++ {
		spec[k] *= 2
	}

	for k := n/2 + 1; k < n; k++ {
		spec[k] = 0
	}

	if err := plan.Inverse(in, spec); err != nil {
		return nil, fmt.Errorf("hilbert: inverse FFT failed: %w", err)
	}

	return in, nil
}

// Envelope returns |Analytic(x)|.
func Envelope(x []float64) ([]float64, error) {
	re, im, err := parts(x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	vecmath.Magnitude(out, re, im)

	return out, nil
}

// InstantaneousPower returns |Analytic(x)|^2, the squared envelope.
func InstantaneousPower(x []float64) ([]float64, error) {
	re, im, err := parts(x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	vecmath.Power(out, re, im)

	return out, nil
}

func parts(x []float64) (re, im []float64, err error) {
	a, err := Analytic(x)
	if err != nil {
		return nil, nil, err
	}

	re = make([]float64, len(a))
	im = make([]float64, len(a))

	for i, v := range a {
		re[i], im[i] = real(v), imag(v)
	}

	return re, im, nil
}
