package design

import (
	"fmt"
	"math"
)

// Kind selects the frequency response shape.
type Kind int

const (
	// Lowpass passes frequencies below a single cutoff.
	Lowpass Kind = iota
	// Bandpass passes frequencies between two cutoffs.
	Bandpass
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Bandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec describes a digital Butterworth filter.
type Spec struct {
	Order      int
	Cutoffs    []float64
	Kind       Kind
	SampleRate float64
}

// Key is the comparable identity of a Spec. Equal specs produce equal keys.
type Key struct {
	Order      int
	Kind       Kind
	Low, High  float64
	SampleRate float64
}

// Key returns the cache key for s. The spec should be validated first.
func (s Spec) Key() Key {
	k := Key{Order: s.Order, Kind: s.Kind, SampleRate: s.SampleRate}
	if len(s.Cutoffs) > 0 {
		k.Low = s.Cutoffs[0]
	}

	if len(s.Cutoffs) > 1 {
		k.High = s.Cutoffs[1]
	}

	return k
}

// Validate checks that s describes a realisable filter.
func (s Spec) Validate() error {
	if s.Order < 1 {
		return fmt.Errorf("%w: order %d < 1", ErrInvalidSpec, s.Order)
	}

	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidSpec, s.SampleRate)
	}

	switch s.Kind {
	case Lowpass:
		if len(s.Cutoffs) != 1 {
			return fmt.Errorf("%w: lowpass needs 1 cutoff, got %d", ErrInvalidSpec, len(s.Cutoffs))
		}
	case Bandpass:
		if len(s.Cutoffs) != 2 {
			return fmt.Errorf("%w: bandpass needs 2 cutoffs, got %d", ErrInvalidSpec, len(s.Cutoffs))
		}

		if !(s.Cutoffs[0] < s.Cutoffs[1]) {
			return fmt.Errorf("%w: bandpass cutoffs %g >= %g", ErrInvalidSpec, s.Cutoffs[0], s.Cutoffs[1])
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidSpec, s.Kind)
	}

	nyquist := s.SampleRate / 2
	for _, f := range s.Cutoffs {
		if !(f > 0 && f < nyquist) {
			return fmt.Errorf("%w: cutoff %g Hz outside (0, %g)", ErrInvalidSpec, f, nyquist)
		}
	}

	return nil
}
