package sleep

import (
	"errors"

	"github.com/cwbudde/algo-sleep/dsp/core"
	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
	"github.com/cwbudde/algo-sleep/dsp/resample"
)

// Errors returned by the pipeline. Failures of lower stages are wrapped, so
// errors.Is matches the stage sentinel through these aliases.
var (
	// ErrInvalidSpec indicates an unrealisable band or filter order.
	ErrInvalidSpec = design.ErrInvalidSpec
	// ErrInvalidFactor indicates a decimation factor below 2.
	ErrInvalidFactor = resample.ErrInvalidFactor
	// ErrInvalidRate indicates a non-positive or non-finite sample rate.
	ErrInvalidRate = resample.ErrInvalidRate
	// ErrInvalidInput indicates a signal too short for zero-phase filtering.
	ErrInvalidInput = zerophase.ErrInvalidInput
	// ErrInsufficientSamples indicates too few samples to differentiate or
	// normalise.
	ErrInsufficientSamples = core.ErrInsufficientSamples
	// ErrLengthMismatch indicates power signals of different lengths.
	ErrLengthMismatch = core.ErrLengthMismatch
	// ErrDegenerateSignal indicates a power signal that cannot be
	// normalised, or a normalised delta power of exactly zero.
	ErrDegenerateSignal = errors.New("sleep: degenerate signal")
)
