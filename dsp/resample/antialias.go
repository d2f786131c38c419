package resample

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
	"github.com/cwbudde/algo-sleep/dsp/window"
)

// AntiAlias low-pass filters a signal and keeps every factor-th sample,
// starting at index 0. The output has ceil(len(x)/factor) samples.
// Implementations must not modify x.
type AntiAlias interface {
	Decimate(x []float64, factor int) ([]float64, error)
}

// FIRAntiAlias is a linear-phase windowed-sinc low-pass with cutoff at the
// output Nyquist frequency. Taps are centred on each kept sample and the
// signal is treated as zero outside its bounds, so the filter is evaluated
// only where an output is produced.
//
// Unless WithTaps fixes the length, the filter has 20*factor+1 taps, so the
// transition band narrows with the cutoff.
type FIRAntiAlias struct {
	taps   int
	window window.Type
	beta   float64
}

// FIROption configures a FIRAntiAlias.
type FIROption func(*FIRAntiAlias)

// WithTaps fixes the filter length for every factor. Even lengths are
// rounded up so the filter stays centred; lengths below 3 are ignored.
func WithTaps(n int) FIROption {
	return func(f *FIRAntiAlias) {
		if n < 3 {
			return
		}

		f.taps = n | 1
	}
}

// WithWindow selects the design window.
func WithWindow(t window.Type) FIROption {
	return func(f *FIRAntiAlias) {
		f.window = t
	}
}

// WithKaiserBeta sets beta for window.TypeKaiser.
func WithKaiserBeta(beta float64) FIROption {
	return func(f *FIRAntiAlias) {
		if beta >= 0 {
			f.beta = beta
		}
	}
}

// NewFIRAntiAlias returns the default Hamming design with 20*factor+1 taps.
func NewFIRAntiAlias(opts ...FIROption) *FIRAntiAlias {
	f := &FIRAntiAlias{window: window.TypeHamming, beta: 8.6}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// Taps returns the designed filter for factor.
func (f *FIRAntiAlias) Taps(factor int) []float64 {
	n := f.taps
	if n == 0 {
		n = 20*factor + 1
	}

	return lowpassTaps(0.5/float64(factor), f.designWindow(n))
}

func (f *FIRAntiAlias) designWindow(n int) []float64 {
	var (
		win []float64
		err error
	)

	switch f.window {
	case window.TypeHamming:
		win, err = window.Hamming(n)
	case window.TypeKaiser:
		win, err = window.Kaiser(n, f.beta)
	default:
		return window.Generate(f.window, n)
	}

	if err != nil {
		return window.Generate(window.TypeRectangular, n)
	}

	return win
}

// Decimate implements AntiAlias.
func (f *FIRAntiAlias) Decimate(x []float64, factor int) ([]float64, error) {
	if factor < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	h := f.Taps(factor)
	half := len(h) / 2
	out := make([]float64, (len(x)+factor-1)/factor)

	// h is symmetric, so y[k] is a plain dot product with the input
	// window centred on sample k*factor.
	for k := range out {
		start := k*factor - half
		end := start + len(h)

		if start >= 0 && end <= len(x) {
			out[k] = floats.Dot(h, x[start:end])

			continue
		}

		lo, hi := max(start, 0), min(end, len(x))
		out[k] = floats.Dot(h[lo-start:hi-start], x[lo:hi])
	}

	return out, nil
}

// IIRAntiAlias filters with an order-8 Butterworth low-pass at 80% of the
// output Nyquist frequency, applied forward-backward, then subsamples.
// Designs are shared through the Designer's cache.
type IIRAntiAlias struct {
	designer *design.Designer
	order    int
}

// NewIIRAntiAlias returns an IIR strategy designing through d. A nil d gets
// a private Designer.
func NewIIRAntiAlias(d *design.Designer) *IIRAntiAlias {
	if d == nil {
		d = design.NewDesigner()
	}

	return &IIRAntiAlias{designer: d, order: 8}
}

// Decimate implements AntiAlias. Inputs shorter than the filter's padding
// requirement fail with zerophase.ErrInvalidInput.
func (a *IIRAntiAlias) Decimate(x []float64, factor int) ([]float64, error) {
	if factor < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	// Sample rate 2 puts Nyquist at 1, so the cutoff is a fraction of it.
	sos, err := a.designer.Design(design.Spec{
		Order:      a.order,
		Cutoffs:    []float64{0.8 / float64(factor)},
		Kind:       design.Lowpass,
		SampleRate: 2,
	})
	if err != nil {
		return nil, err
	}

	y, err := zerophase.Apply(sos, x)
	if err != nil {
		return nil, fmt.Errorf("resample: anti-alias filter: %w", err)
	}

	out := make([]float64, (len(y)+factor-1)/factor)
	for k := range out {
		out[k] = y[k*factor]
	}

	return out, nil
}
