// Package design provides digital Butterworth filter designers producing
// cascades of second-order sections for dsp/filter/biquad.
//
// Designs follow the zero-pole-gain route: analog prototype poles are
// pre-warped, frequency-transformed, mapped through the bilinear transform
// and paired into sections. No high-order polynomial is ever formed, which
// keeps narrow low-frequency bands numerically stable.
//
// A [Designer] memoises designs per [Spec] in an injectable [Cache].
package design
