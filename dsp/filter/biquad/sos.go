package biquad

// SOS is an immutable cascade of second-order sections. Any overall gain is
// folded into the first section's numerator, so the cascade output is the
// plain product of the section transfer functions.
//
// An SOS is safe for concurrent use; filtering state lives in a [Chain].
type SOS struct {
	sections []Coefficients
}

// NewSOS copies sections into a new SOS.
func NewSOS(sections []Coefficients) *SOS {
	s := make([]Coefficients, len(sections))
	copy(s, sections)

	return &SOS{sections: s}
}

// Sections returns a copy of the section coefficients in cascade order.
func (s *SOS) Sections() []Coefficients {
	out := make([]Coefficients, len(s.sections))
	copy(out, s.sections)

	return out
}

// NumSections returns the number of second-order sections.
func (s *SOS) NumSections() int {
	return len(s.sections)
}

// Section returns the i-th section coefficients.
func (s *SOS) Section(i int) Coefficients {
	return s.sections[i]
}

// Order returns the filter order: the summed denominator degree of the
// sections. A section with A2 == 0 is first order even when B2 != 0, as in
// the padded section of an odd-order zpk design.
func (s *SOS) Order() int {
	order := 0

	for _, c := range s.sections {
		switch {
		case c.A2 != 0:
			order += 2
		case c.A1 != 0:
			order++
		}
	}

	return order
}

// StepState returns the steady-state delay lines of every section for a unit
// step applied to the whole cascade. Each section sees the step scaled by the
// DC gain of the sections before it.
func (s *SOS) StepState() [][2]float64 {
	states := make([][2]float64, len(s.sections))
	scale := 1.0

	for i, c := range s.sections {
		zi := c.StepState()
		states[i] = [2]float64{scale * zi[0], scale * zi[1]}
		scale *= c.DCGain()
	}

	return states
}

// NewChain returns a zero-state runtime for the cascade.
func (s *SOS) NewChain() *Chain {
	return NewChain(s.sections)
}
