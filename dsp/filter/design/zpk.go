package design

import (
	"math"
	"math/cmplx"
)

// zpk is a filter in zero-pole-gain form.
type zpk struct {
	z []complex128
	p []complex128
	k float64
}

// bilinearRate is the normalised sampling rate used during design. Cutoffs
// are expressed as fractions of Nyquist, so any fixed rate works; 2 keeps
// the pre-warp and bilinear constants consistent.
const bilinearRate = 2.0

// butterworthPrototype returns the analog lowpass prototype with unit
// cutoff: n poles evenly spaced on the left half of the unit circle.
func butterworthPrototype(n int) zpk {
	p := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}

	return zpk{p: p, k: 1}
}

// prewarp maps a digital cutoff (fraction of Nyquist) to the analog
// frequency that the bilinear transform sends back onto it.
func prewarp(wn float64) float64 {
	return 2 * bilinearRate * math.Tan(math.Pi*wn/bilinearRate)
}

// toLowpass scales the prototype to cutoff wo.
func toLowpass(f zpk, wo float64) zpk {
	degree := len(f.p) - len(f.z)
	out := zpk{
		z: scaleRoots(f.z, wo),
		p: scaleRoots(f.p, wo),
		k: f.k * math.Pow(wo, float64(degree)),
	}

	return out
}

// toBandpass maps the prototype to a bandpass centred on wo with width bw.
// Each root splits into two; the excess degree becomes zeros at the origin.
func toBandpass(f zpk, wo, bw float64) zpk {
	degree := len(f.p) - len(f.z)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		lp := scaleRoots(roots, bw/2)
		out := make([]complex128, 0, 2*len(lp))

		for _, r := range lp {
			out = append(out, r+cmplx.Sqrt(r*r-wo2))
		}

		for _, r := range lp {
			out = append(out, r-cmplx.Sqrt(r*r-wo2))
		}

		return out
	}

	z := split(f.z)
	for range degree {
		z = append(z, 0)
	}

	return zpk{z: z, p: split(f.p), k: f.k * math.Pow(bw, float64(degree))}
}

// bilinear maps an analog zpk to the z-plane. Zeros at infinity land at
// z = -1 so the digital filter has as many zeros as poles.
func bilinear(f zpk) zpk {
	fs2 := complex(2*bilinearRate, 0)
	degree := len(f.p) - len(f.z)

	z := make([]complex128, 0, len(f.p))
	num := complex(1, 0)

	for _, r := range f.z {
		z = append(z, (fs2+r)/(fs2-r))
		num *= fs2 - r
	}

	for range degree {
		z = append(z, -1)
	}

	p := make([]complex128, len(f.p))
	den := complex(1, 0)

	for i, r := range f.p {
		p[i] = (fs2 + r) / (fs2 - r)
		den *= fs2 - r
	}

	return zpk{z: z, p: p, k: f.k * real(num/den)}
}

func scaleRoots(roots []complex128, s float64) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * complex(s, 0)
	}

	return out
}

// butterworthZPK designs the digital filter for a validated spec.
func butterworthZPK(s Spec) zpk {
	proto := butterworthPrototype(s.Order)

	switch s.Kind {
	case Bandpass:
		lo := prewarp(2 * s.Cutoffs[0] / s.SampleRate)
		hi := prewarp(2 * s.Cutoffs[1] / s.SampleRate)

		return bilinear(toBandpass(proto, math.Sqrt(lo*hi), hi-lo))
	default:
		return bilinear(toLowpass(proto, prewarp(2*s.Cutoffs[0]/s.SampleRate)))
	}
}
