// Package testutil holds deterministic signal generators and tolerance
// assertions shared by package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// SumOfSines adds unit-amplitude sines at each frequency.
func SumOfSines(freqsHz []float64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)

	for _, f := range freqsHz {
		for i, v := range DeterministicSine(f, sampleRate, 1, length) {
			out[i] += v
		}
	}

	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a seeded PCG source.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Ramp returns offset + slope*t sampled at sampleRate.
func Ramp(offset, slope, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = offset + slope*float64(i)/sampleRate
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}
