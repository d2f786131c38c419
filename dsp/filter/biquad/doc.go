// Package biquad provides second-order-section (SOS) filter primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. An [SOS] is the immutable,
// numerically robust description of a higher-order IIR filter as a cascade
// of sections; it is what filter design produces and what gets cached.
// [Chain] is the stateful runtime built from an SOS.
//
// This package provides representation and runtime only. Coefficient design
// (Butterworth lowpass/bandpass) lives in dsp/filter/design.
package biquad
