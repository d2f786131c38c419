// Package hilbert computes the analytic signal of a finite real sequence.
//
// The analytic signal x + j*H{x} is formed in the frequency domain: the
// spectrum is computed over the full signal length, negative frequencies
// are zeroed, positive ones doubled, and the result transformed back. The
// real part reproduces the input exactly; the magnitude is the
// instantaneous envelope.
package hilbert
