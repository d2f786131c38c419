package conv

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// CorrelateFFT computes the full cross-correlation of a and b through a
// zero-padded power-of-two FFT. The result has length len(a) + len(b) - 1
// and index k corresponds to lag k - (len(b) - 1).
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n, m := len(a), len(b)
	size := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	spectrum := func(x []float64) ([]complex128, error) {
		in := make([]complex128, size)
		for i, v := range x {
			in[i] = complex(v, 0)
		}

		out := make([]complex128, size)
		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		return out, nil
	}

	fa, err := spectrum(a)
	if err != nil {
		return nil, err
	}

	fb, err := spectrum(b)
	if err != nil {
		return nil, err
	}

	for i := range fa {
		fa[i] *= cmplx.Conj(fb[i])
	}

	circ := make([]complex128, size)
	if err := plan.Inverse(circ, fa); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Non-negative lags sit at the start of the circular result, negative
	// lags wrap around to its end.
	result := make([]float64, n+m-1)
	for i := range n {
		result[m-1+i] = real(circ[i])
	}

	for i := range m - 1 {
		result[i] = real(circ[size-m+1+i])
	}

	return result, nil
}

// FindPeak finds the index and value of the maximum in a correlation result.
// Useful for finding the best alignment between two signals.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	value = corr[0]

	for i, v := range corr {
		if v > value {
			index = i
			value = v
		}
	}

	return index, value
}

// LagFromIndex converts a correlation result index to a lag value.
// For a correlation of signals with lengths lenA and lenB,
// the lag at index i is i - (lenB - 1).
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag converts a lag value to a correlation result index.
// Returns the index in the correlation result array for the given lag.
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}

// Lag estimates the delay of x relative to ref in samples by locating the
// cross-correlation peak within [-maxLag, maxLag]. A positive lag means x
// trails ref. Both signals must have the same length.
func Lag(ref, x []float64, maxLag int) (int, error) {
	if len(ref) == 0 {
		return 0, ErrEmptyInput
	}

	if len(ref) != len(x) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(ref), len(x))
	}

	if maxLag < 0 || maxLag >= len(ref) {
		return 0, fmt.Errorf("%w: %d for length %d", ErrInvalidLag, maxLag, len(ref))
	}

	corr, err := CorrelateFFT(x, ref)
	if err != nil {
		return 0, err
	}

	lo := IndexFromLag(-maxLag, len(ref))
	hi := IndexFromLag(maxLag, len(ref))
	idx, _ := FindPeak(corr[lo : hi+1])

	return LagFromIndex(lo+idx, len(ref)), nil
}
