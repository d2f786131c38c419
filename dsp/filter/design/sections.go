package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-sleep/dsp/filter/biquad"
	"github.com/cwbudde/algo-sleep/internal/polyroot"
)

// toSections pairs poles and zeros into second-order sections.
//
// Poles are taken closest-to-unit-circle first and matched with their
// conjugate (or the next worst real pole) and the nearest zeros. Those
// sections are placed last in the cascade so the sharpest resonance sees
// an already band-limited signal. The overall gain goes into the first
// section.
func toSections(f zpk) ([]biquad.Coefficients, error) {
	z := append([]complex128(nil), f.z...)
	p := append([]complex128(nil), f.p...)

	for len(p) < len(z) {
		p = append(p, 0)
	}

	for len(z) < len(p) {
		z = append(z, 0)
	}

	n := (len(p) + 1) / 2
	if len(p)%2 == 1 {
		p = append(p, 0)
		z = append(z, 0)
	}

	zc, zr, err := polyroot.SplitConjugates(z)
	if err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}

	pc, pr, err := polyroot.SplitConjugates(p)
	if err != nil {
		return nil, fmt.Errorf("poles: %w", err)
	}

	z = append(zc, zr...)
	p = append(pc, pr...)

	sections := make([]biquad.Coefficients, n)

	for si := n - 1; si >= 0; si-- {
		i1 := worstPole(p, polyroot.AnyRoot)
		p1 := p[i1]
		p = polyroot.Remove(p, i1)

		var zs, ps [2]complex128

		switch {
		case isReal(p1) && countReal(p) == 0:
			// Lone real pole: first-order section padded with a root at 0.
			j, err := nearestZero(z, p1, polyroot.RealRoot)
			if err != nil {
				return nil, err
			}

			zs = [2]complex128{z[j], 0}
			ps = [2]complex128{p1, 0}
			z = polyroot.Remove(z, j)

		case len(p)+1 == len(z) && !isReal(p1) && countReal(p) == 1 && countReal(z) == 1:
			// Keep the last real zero for the last real pole.
			j, err := nearestZero(z, p1, polyroot.ComplexRoot)
			if err != nil {
				return nil, err
			}

			zs = [2]complex128{z[j], cmplx.Conj(z[j])}
			ps = [2]complex128{p1, cmplx.Conj(p1)}
			z = polyroot.Remove(z, j)

		default:
			p2 := cmplx.Conj(p1)
			if isReal(p1) {
				i2 := worstPole(p, polyroot.RealRoot)
				p2 = p[i2]
				p = polyroot.Remove(p, i2)
			}

			ps = [2]complex128{p1, p2}

			j, err := nearestZero(z, p1, polyroot.AnyRoot)
			if err != nil {
				return nil, err
			}

			z1 := z[j]
			z = polyroot.Remove(z, j)

			if !isReal(z1) {
				zs = [2]complex128{z1, cmplx.Conj(z1)}
			} else {
				j2, err := nearestZero(z, p1, polyroot.RealRoot)
				if err != nil {
					return nil, err
				}

				zs = [2]complex128{z1, z[j2]}
				z = polyroot.Remove(z, j2)
			}
		}

		b0, b1, b2 := polyroot.QuadFromPair(zs[0], zs[1])
		_, a1, a2 := polyroot.QuadFromPair(ps[0], ps[1])
		sections[si] = biquad.Coefficients{B0: b0, B1: b1, B2: b2, A1: a1, A2: a2}
	}

	if len(p) != 0 || len(z) != 0 {
		return nil, fmt.Errorf("%d poles and %d zeros left unpaired", len(p), len(z))
	}

	sections[0].B0 *= f.k
	sections[0].B1 *= f.k
	sections[0].B2 *= f.k

	return sections, nil
}

// worstPole returns the index of the pole closest to the unit circle,
// restricted to real poles when which is polyroot.RealRoot.
func worstPole(p []complex128, which polyroot.Which) int {
	best := -1
	bestDist := math.Inf(1)

	for i, r := range p {
		if which == polyroot.RealRoot && !isReal(r) {
			continue
		}

		if d := math.Abs(1 - cmplx.Abs(r)); d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

func nearestZero(z []complex128, target complex128, which polyroot.Which) (int, error) {
	j := polyroot.Nearest(z, target, which)
	if j < 0 {
		return 0, fmt.Errorf("no zero left to pair with pole %v", target)
	}

	return j, nil
}

func isReal(r complex128) bool { return imag(r) == 0 }

func countReal(roots []complex128) int {
	n := 0
	for _, r := range roots {
		if isReal(r) {
			n++
		}
	}

	return n
}
