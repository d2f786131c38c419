package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Each second-order section feeds into the next.
type Chain struct {
	sections []Section
}

// NewChain creates a zero-state cascade with one Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// SetScaledState loads per-section delay lines multiplied by scale. The
// slice length must match NumSections. Forward-backward filtering uses it
// to start from the steady state of the edge sample.
func (c *Chain) SetScaledState(states [][2]float64, scale float64) {
	for i := range c.sections {
		c.sections[i].SetState([2]float64{states[i][0] * scale, states[i][1] * scale})
	}
}
