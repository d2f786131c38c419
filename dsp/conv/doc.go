// Package conv provides FFT-based cross-correlation for signal alignment.
//
// # Usage
//
//	corr, err := conv.CorrelateFFT(a, b) // full cross-correlation
//	lag, err := conv.Lag(ref, x, 100)    // delay of x relative to ref
//
// Output index k of a full correlation of a and b corresponds to lag
// k - (len(b) - 1); see [LagFromIndex].
package conv
