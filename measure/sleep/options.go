package sleep

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/resample"
)

// Defaults for rodent LFP recordings.
const (
	DefaultSampleRate = 20000.0
	DefaultFactor     = 16
	DefaultOrder      = 4

	DefaultDeltaLow  = 0.1
	DefaultDeltaHigh = 3.0
	DefaultThetaLow  = 4.0
	DefaultThetaHigh = 10.0
)

// Band is a frequency range in Hz.
type Band struct {
	Low, High float64
}

// DefaultDelta returns the 0.1-3 Hz delta band.
func DefaultDelta() Band { return Band{Low: DefaultDeltaLow, High: DefaultDeltaHigh} }

// DefaultTheta returns the 4-10 Hz theta band.
func DefaultTheta() Band { return Band{Low: DefaultThetaLow, High: DefaultThetaHigh} }

// Config holds Analyzer parameters.
type Config struct {
	// SampleRate of the raw recordings in Hz.
	SampleRate float64
	// Factor is the decimation factor shared by every branch.
	Factor int
	// Order of the band-pass Butterworth prototype.
	Order int
	Delta Band
	Theta Band

	designer  *design.Designer
	antiAlias resample.AntiAlias
	logger    *zap.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default analysis parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Factor:     DefaultFactor,
		Order:      DefaultOrder,
		Delta:      DefaultDelta(),
		Theta:      DefaultTheta(),
	}
}

// WithSampleRate sets the raw sample rate in Hz. The value is validated by
// NewAnalyzer.
func WithSampleRate(rate float64) Option {
	return func(cfg *Config) { cfg.SampleRate = rate }
}

// WithFactor sets the decimation factor.
func WithFactor(factor int) Option {
	return func(cfg *Config) { cfg.Factor = factor }
}

// WithOrder sets the Butterworth order of the band filters.
func WithOrder(order int) Option {
	return func(cfg *Config) { cfg.Order = order }
}

// WithBands sets the delta and theta bands.
func WithBands(delta, theta Band) Option {
	return func(cfg *Config) {
		cfg.Delta = delta
		cfg.Theta = theta
	}
}

// WithDesigner shares a filter Designer, and so its cache, between
// analyzers. By default all analyzers share one package-level Designer.
func WithDesigner(d *design.Designer) Option {
	return func(cfg *Config) {
		if d != nil {
			cfg.designer = d
		}
	}
}

// WithAntiAlias selects the decimation strategy. The default is
// resample.NewFIRAntiAlias().
func WithAntiAlias(a resample.AntiAlias) Option {
	return func(cfg *Config) {
		if a != nil {
			cfg.antiAlias = a
		}
	}
}

// WithLogger sets the logger for stage timing records.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
