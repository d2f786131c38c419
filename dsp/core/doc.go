// Package core contains numeric helpers shared across the DSP packages:
// dB conversion and numerical differentiation.
package core
