package sleep

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-sleep/dsp/core"
	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/hilbert"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
	"github.com/cwbudde/algo-sleep/dsp/resample"
	timestats "github.com/cwbudde/algo-sleep/stats/time"
)

// sharedDesigner backs analyzers built without WithDesigner, so band filters
// are designed once per process.
var sharedDesigner = design.NewDesigner()

// Result holds time-aligned classifier inputs.
type Result struct {
	Ratio  []float64 // z-scored theta power over z-scored delta power
	Motion []float64 // derivative of the decimated accelerometer, units/s
	Rate   float64   // sample rate of Ratio and Motion in Hz
}

// Analyzer computes classifier inputs with a fixed configuration.
// It holds no per-signal state and is safe for concurrent use.
type Analyzer struct {
	cfg       Config
	decimator *resample.Decimator
	designer  *design.Designer
	logger    *zap.Logger
}

// NewAnalyzer validates the configuration and returns an Analyzer.
// Both bands must fit below the Nyquist frequency of the decimated rate.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := ApplyOptions(opts...)

	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, cfg.SampleRate)
	}

	var decOpts []resample.Option
	if cfg.antiAlias != nil {
		decOpts = append(decOpts, resample.WithAntiAlias(cfg.antiAlias))
	}

	dec, err := resample.NewDecimator(cfg.Factor, decOpts...)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:       cfg,
		decimator: dec,
		designer:  cfg.designer,
		logger:    cfg.logger,
	}

	if a.designer == nil {
		a.designer = sharedDesigner
	}

	if a.logger == nil {
		a.logger = zap.NewNop()
	}

	if err := a.bandSpec(cfg.Delta).Validate(); err != nil {
		return nil, fmt.Errorf("delta band: %w", err)
	}

	if err := a.bandSpec(cfg.Theta).Validate(); err != nil {
		return nil, fmt.Errorf("theta band: %w", err)
	}

	return a, nil
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Rate returns the sample rate of every output signal.
func (a *Analyzer) Rate() float64 {
	return a.cfg.SampleRate / float64(a.cfg.Factor)
}

// Designer returns the filter designer in use.
func (a *Analyzer) Designer() *design.Designer { return a.designer }

// Decimate returns x decimated with the analyzer's factor and anti-alias
// strategy, sampled at Rate().
func (a *Analyzer) Decimate(x []float64) ([]float64, error) {
	dec, _, err := a.decimator.Process(x, a.cfg.SampleRate)

	return dec, err
}

func (a *Analyzer) bandSpec(b Band) design.Spec {
	return design.Spec{
		Order:      a.cfg.Order,
		Cutoffs:    []float64{b.Low, b.High},
		Kind:       design.Bandpass,
		SampleRate: a.Rate(),
	}
}

// BandPower returns the instantaneous power of raw within band at the
// decimated rate: the squared envelope of the decimated signal after
// zero-phase band-pass filtering. The output has ceil(len(raw)/Factor)
// non-negative samples. Signals too short to filter fail with
// ErrInvalidInput.
func (a *Analyzer) BandPower(raw []float64, band Band) ([]float64, error) {
	dec, err := a.Decimate(raw)
	if err != nil {
		return nil, err
	}

	return a.decimatedBandPower(dec, band)
}

// decimatedBandPower band-filters and squares the envelope of a signal
// already sampled at Rate().
func (a *Analyzer) decimatedBandPower(dec []float64, band Band) ([]float64, error) {
	start := time.Now()

	sos, err := a.designer.Design(a.bandSpec(band))
	if err != nil {
		return nil, err
	}

	filtered, err := zerophase.Apply(sos, dec)
	if err != nil {
		return nil, err
	}

	power, err := hilbert.InstantaneousPower(filtered)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	a.logger.Debug("band power",
		zap.Float64("low_hz", band.Low),
		zap.Float64("high_hz", band.High),
		zap.Int("samples", len(power)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return power, nil
}

// DeltaThetaRatio returns NormalizedRatio of the theta and delta band power
// of lfp. The signal is decimated once; both band powers are then computed
// concurrently from the shared decimated trace.
func (a *Analyzer) DeltaThetaRatio(lfp []float64) ([]float64, error) {
	dec, err := a.Decimate(lfp)
	if err != nil {
		return nil, err
	}

	var theta, delta []float64

	var g errgroup.Group

	g.Go(func() error {
		p, err := a.decimatedBandPower(dec, a.cfg.Theta)
		if err != nil {
			return fmt.Errorf("theta power: %w", err)
		}

		theta = p

		return nil
	})
	g.Go(func() error {
		p, err := a.decimatedBandPower(dec, a.cfg.Delta)
		if err != nil {
			return fmt.Errorf("delta power: %w", err)
		}

		delta = p

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NormalizedRatio(theta, delta)
}

// NormalizedRatio returns zscore(theta) / zscore(delta) elementwise, with
// population statistics over the whole signals.
//
// A power signal with zero variance fails with ErrDegenerateSignal. So does
// a normalised delta sample of exactly zero; the error names its index.
// The result never contains Inf or NaN.
func NormalizedRatio(theta, delta []float64) ([]float64, error) {
	if len(theta) != len(delta) {
		return nil, fmt.Errorf("%w: theta %d, delta %d samples", ErrLengthMismatch, len(theta), len(delta))
	}

	zt, err := normalize("theta", theta)
	if err != nil {
		return nil, err
	}

	zd, err := normalize("delta", delta)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(zt))
	for i := range out {
		if zd[i] == 0 {
			return nil, fmt.Errorf("%w: normalised delta power is zero at sample %d", ErrDegenerateSignal, i)
		}

		out[i] = zt[i] / zd[i]
	}

	return out, nil
}

func normalize(name string, power []float64) ([]float64, error) {
	z, err := timestats.ZScore(power)

	switch {
	case err == nil:
		return z, nil
	case errors.Is(err, timestats.ErrEmptyInput):
		return nil, fmt.Errorf("%w: %s power is empty", ErrInsufficientSamples, name)
	default:
		return nil, fmt.Errorf("%w: %s power: %w", ErrDegenerateSignal, name, err)
	}
}

// MotionDerivative returns the time derivative of the decimated
// accelerometer trace, sampled at Rate(). The time axis is t[i] = i/Rate().
// Fewer than two decimated samples fail with ErrInsufficientSamples.
func (a *Analyzer) MotionDerivative(acc []float64) ([]float64, error) {
	return motionDerivative(a.decimator, acc, a.cfg.SampleRate, a.logger)
}

func motionDerivative(d *resample.Decimator, acc []float64, rawRate float64, logger *zap.Logger) ([]float64, error) {
	start := time.Now()

	dec, rate, err := d.Process(acc, rawRate)
	if err != nil {
		return nil, err
	}

	if len(dec) < 2 {
		return nil, fmt.Errorf("%w: %d decimated samples", ErrInsufficientSamples, len(dec))
	}

	t := floats.Span(make([]float64, len(dec)), 0, float64(len(dec)-1)/rate)

	v, err := core.Gradient(dec, t)
	if err != nil {
		return nil, err
	}

	logger.Debug("motion derivative",
		zap.Int("samples", len(v)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return v, nil
}

// Compute returns the ratio and motion signals. The branches run
// concurrently; if either fails, Compute returns its error and no result.
// Inputs are not modified.
func (a *Analyzer) Compute(lfp, acc []float64) (Result, error) {
	start := time.Now()

	var res Result

	var g errgroup.Group

	g.Go(func() error {
		r, err := a.DeltaThetaRatio(lfp)
		if err != nil {
			return fmt.Errorf("sleep: ratio: %w", err)
		}

		res.Ratio = r

		return nil
	})
	g.Go(func() error {
		m, err := a.MotionDerivative(acc)
		if err != nil {
			return fmt.Errorf("sleep: motion: %w", err)
		}

		res.Motion = m

		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res.Rate = a.Rate()

	a.logger.Debug("classifier inputs",
		zap.Int("lfp_samples", len(lfp)),
		zap.Int("acc_samples", len(acc)),
		zap.Float64("rate_hz", res.Rate),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// BandPower is a one-shot helper computing band power of raw between lowHz
// and highHz.
func BandPower(raw []float64, lowHz, highHz, rawRate float64, factor, order int) ([]float64, error) {
	a, err := NewAnalyzer(
		WithSampleRate(rawRate),
		WithFactor(factor),
		WithOrder(order),
		WithBands(Band{Low: lowHz, High: highHz}, Band{Low: lowHz, High: highHz}),
	)
	if err != nil {
		return nil, err
	}

	return a.BandPower(raw, Band{Low: lowHz, High: highHz})
}

// DeltaThetaRatio is a one-shot helper using DefaultFactor and DefaultOrder.
func DeltaThetaRatio(lfp []float64, delta, theta Band, rawRate float64) ([]float64, error) {
	a, err := NewAnalyzer(WithSampleRate(rawRate), WithBands(delta, theta))
	if err != nil {
		return nil, err
	}

	return a.DeltaThetaRatio(lfp)
}

// MotionDerivative is a one-shot helper for the accelerometer branch. It
// needs no band configuration.
func MotionDerivative(acc []float64, factor int, rawRate float64) ([]float64, error) {
	d, err := resample.NewDecimator(factor)
	if err != nil {
		return nil, err
	}

	return motionDerivative(d, acc, rawRate, zap.NewNop())
}

// Compute is a one-shot helper using DefaultFactor and DefaultOrder.
func Compute(lfp, acc []float64, delta, theta Band, rawRate float64) (Result, error) {
	a, err := NewAnalyzer(WithSampleRate(rawRate), WithBands(delta, theta))
	if err != nil {
		return Result{}, err
	}

	return a.Compute(lfp, acc)
}
