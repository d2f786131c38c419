package resample

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-sleep/dsp/window"
)

// lowpassTaps designs a windowed-sinc low-pass with len(win) taps and cutoff
// fc in cycles per sample, scaled to unit DC gain.
func lowpassTaps(fc float64, win []float64) []float64 {
	ideal := make([]float64, len(win))

	center := 0.5 * float64(len(win)-1)
	for n := range ideal {
		ideal[n] = 2 * fc * sinc(2*fc*(float64(n)-center))
	}

	taps, err := window.ApplyCoefficients(ideal, win)
	if err != nil {
		return ideal
	}

	if sum := floats.Sum(taps); sum != 0 {
		floats.Scale(1/sum, taps)
	}

	return taps
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}
