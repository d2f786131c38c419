// Package polyroot provides root bookkeeping shared by filter design:
// conjugate-pair splitting, nearest-root search and quadratic expansion of
// root pairs into second-order polynomial coefficients.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
)

// ErrUnpairedRoot is returned when a complex root has no conjugate partner.
var ErrUnpairedRoot = errors.New("polyroot: complex root without conjugate")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// realTol scales machine epsilon for the "is this root real" test.
const realTol = 100 * 2.220446049250313e-16

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// IsReal reports whether r is real up to rounding noise relative to |r|.
func IsReal(r complex128) bool {
	return math.Abs(imag(r)) <= realTol*cmplx.Abs(r)
}

// SplitConjugates separates roots into complex roots with positive imaginary
// part (one representative per conjugate pair) and purely real roots.
// Real roots have their imaginary noise removed. Both outputs are sorted by
// real part so the result does not depend on input order.
func SplitConjugates(roots []complex128) (cplx []complex128, reals []complex128, err error) {
	used := make([]bool, len(roots))

	for i, r := range roots {
		if used[i] {
			continue
		}

		if IsReal(r) {
			used[i] = true
			reals = append(reals, complex(real(r), 0))

			continue
		}

		best := -1
		bestDist := math.MaxFloat64
		conj := cmplx.Conj(r)

		for j := i + 1; j < len(roots); j++ {
			if used[j] || IsReal(roots[j]) {
				continue
			}

			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(r, roots[best], ConjugateTol) {
			return nil, nil, ErrUnpairedRoot
		}

		used[i] = true
		used[best] = true

		// Average the pair so the representative is exactly conjugate-symmetric.
		avg := complex((real(r)+real(roots[best]))/2, math.Abs(imag(r)-imag(roots[best]))/2)
		cplx = append(cplx, avg)
	}

	byReal := func(s []complex128) {
		sort.SliceStable(s, func(a, b int) bool { return real(s[a]) < real(s[b]) })
	}
	byReal(cplx)
	byReal(reals)

	return cplx, reals, nil
}

// Which filters candidates in Nearest.
type Which int

const (
	AnyRoot Which = iota
	RealRoot
	ComplexRoot
)

// Nearest returns the index of the root in from closest to target that
// satisfies which, or -1 if none qualifies.
func Nearest(from []complex128, target complex128, which Which) int {
	best := -1
	bestDist := math.Inf(1)

	for i, r := range from {
		isReal := imag(r) == 0

		switch which {
		case RealRoot:
			if !isReal {
				continue
			}
		case ComplexRoot:
			if isReal {
				continue
			}
		}

		if d := cmplx.Abs(r - target); d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

// Remove returns roots without element i. The input slice is not modified.
func Remove(roots []complex128, i int) []complex128 {
	out := make([]complex128, 0, len(roots)-1)
	out = append(out, roots[:i]...)

	return append(out, roots[i+1:]...)
}

// QuadFromPair expands (1 - r1 z^-1)(1 - r2 z^-1) into real coefficients
// (1, -(r1+r2), r1*r2). The pair must be conjugate or both real.
func QuadFromPair(r1, r2 complex128) (float64, float64, float64) {
	return 1, -real(r1 + r2), real(r1 * r2)
}
