package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sleep/dsp/core"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|) for a single section.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return powerDB(c.Response(freqHz, sampleRate))
}

// Response computes the complex frequency response of the full cascade
// as the product of individual section responses.
func (s *SOS) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, c := range s.sections {
		h *= c.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (s *SOS) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return powerDB(s.Response(freqHz, sampleRate))
}

func powerDB(h complex128) float64 {
	m := cmplx.Abs(h)

	return core.LinearPowerToDB(m * m)
}

// ImpulseResponse computes n samples of the cascade impulse response
// using a fresh chain.
func (s *SOS) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	c := s.NewChain()
	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)

	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}

	return ir
}
