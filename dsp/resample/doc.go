// Package resample provides integer-factor decimation with a pluggable
// anti-aliasing stage.
//
// Two strategies implement [AntiAlias]:
//
//	strategy       filter                                       cost per output sample
//	FIRAntiAlias   (20*factor+1)-tap Hamming windowed sinc (default)  taps multiply-adds
//	IIRAntiAlias   order-8 Butterworth, forward-backward           ~4 sections x factor
//
// Both are zero-phase, so decimated features stay aligned with the input.
// The FIR path is the reference; the IIR path trades stopband accuracy for
// speed on long recordings.
//
// Common workflows:
//   - Decimate(x, factor, rate, opts...)
//   - NewDecimator(factor, opts...) for repeated use
package resample
