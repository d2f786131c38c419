// Package spectrum estimates power spectral density with Welch's method
// and summarises it over frequency bands.
//
// The estimate averages periodograms of overlapping Hann-windowed segments.
// Densities are scaled per Hz, so summing density times bin width over a
// band yields the band's power.
package spectrum
