package main

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sleep/dsp/filter/design"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := newApp(&out).Run(context.Background(), append([]string{"sleepscore"}, args...))

	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo", "--duration", "6", "--noise", "0.1", "--seed", "3")
	require.NoError(t, err)

	require.Contains(t, out, "Output rate")
	require.Contains(t, out, "1250 Hz")
	require.Regexp(t, regexp.MustCompile(`Samples\s+7500`), out)
	require.Regexp(t, regexp.MustCompile(`Theta alignment lag\s+0 samples`), out)
	require.Contains(t, out, "delta+theta")
	require.Contains(t, out, "active")
	require.Contains(t, out, "Peak [Hz]")
}

func TestDemo_IIR(t *testing.T) {
	out, err := run(t, "--log-level", "error", "demo", "--duration", "3", "--iir")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`Samples\s+3750`), out)
}

func TestDemo_InvalidFactor(t *testing.T) {
	_, err := run(t, "demo", "--duration", "3", "--factor", "1")
	require.Error(t, err)
}

func TestDesign(t *testing.T) {
	out, err := run(t, "design", "--kind", "bandpass", "--cutoff", "0.1", "--cutoff", "3", "--rate", "1250")
	require.NoError(t, err)

	require.Contains(t, out, "bandpass order 4")
	require.Regexp(t, regexp.MustCompile(`Stable\s+true`), out)
	require.Regexp(t, regexp.MustCompile(`Order\s+8`), out)
	require.Regexp(t, regexp.MustCompile(`Min zero-phase length\s+28`), out)
	require.Regexp(t, regexp.MustCompile(`\|H\(3 Hz\)\|\s+-3\.0[0-9] dB`), out)
	require.Contains(t, out, "Zeros")
	require.Contains(t, out, "Impulse settles (-60 dB)")
}

func TestDesign_Lowpass(t *testing.T) {
	out, err := run(t, "design", "-k", "lp", "-c", "100", "-n", "3", "-r", "1000")
	require.NoError(t, err)
	require.Contains(t, out, "lowpass order 3")
	require.Regexp(t, regexp.MustCompile(`Order\s+3\n`), out)
	require.Regexp(t, regexp.MustCompile(`Impulse settles \(-60 dB\)\s+\d+ samples`), out)

	// Three zeros at Nyquist across the sections.
	require.Equal(t, 3, strings.Count(out, "(-1.0000"))
}

func TestSettlingLength(t *testing.T) {
	require.Equal(t, 3, settlingLength([]float64{1, -0.5, 0.01, 1e-4, 0}))
	require.Equal(t, -1, settlingLength([]float64{1, 1, 1}))
	require.Equal(t, 0, settlingLength(make([]float64, 4)))
}

func TestDesign_Errors(t *testing.T) {
	_, err := run(t, "design", "--kind", "notch")
	require.ErrorIs(t, err, errUnknownKind)

	_, err = run(t, "design", "--cutoff", "700", "--cutoff", "800", "--rate", "1250")
	require.ErrorIs(t, err, design.ErrInvalidSpec)
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := newLogger(level, false)
		require.NoError(t, err, level)
		require.NotNil(t, l)
	}

	l, err := newLogger("bogus", true)
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = newLogger("bogus", false)
	require.Error(t, err)
}
