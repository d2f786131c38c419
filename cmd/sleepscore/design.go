package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/cwbudde/algo-sleep/dsp/filter/biquad"
	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
)

var errUnknownKind = errors.New("unknown filter kind")

func designCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "design",
		Usage: "Print the second-order sections of a Butterworth filter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Filter kind: lowpass, bandpass",
				Value:   "bandpass",
			},
			&cli.FloatSliceFlag{
				Name:    "cutoff",
				Aliases: []string{"c"},
				Usage:   "Cutoff frequency in Hz; repeat for bandpass edges",
				Value:   []float64{4, 10},
			},
			&cli.IntFlag{
				Name:    "order",
				Aliases: []string{"n"},
				Usage:   "Prototype order",
				Value:   4,
			},
			&cli.FloatFlag{
				Name:    "rate",
				Aliases: []string{"r"},
				Usage:   "Sample rate in Hz",
				Value:   1250,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			kind, err := parseKind(cmd.String("kind"))
			if err != nil {
				return err
			}

			spec := design.Spec{
				Order:      cmd.Int("order"),
				Cutoffs:    cmd.FloatSlice("cutoff"),
				Kind:       kind,
				SampleRate: cmd.Float("rate"),
			}

			sos, err := design.NewDesigner(design.WithLogger(logger)).Design(spec)
			if err != nil {
				return err
			}

			return printSections(w, spec, sos)
		},
	}
}

func parseKind(s string) (design.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp":
		return design.Lowpass, nil
	case "bandpass", "bp":
		return design.Bandpass, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownKind, s)
	}
}

func printSections(w io.Writer, spec design.Spec, sos *biquad.SOS) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s order %d at %g Hz, cutoffs %v Hz\n", spec.Kind, spec.Order, spec.SampleRate, spec.Cutoffs)
	fmt.Fprintf(tw, "Section\tb0\tb1\tb2\ta1\ta2\n")
	fmt.Fprintf(tw, "-------\t--\t--\t--\t--\t--\n")

	for i, c := range sos.Sections() {
		fmt.Fprintf(tw, "%d\t%.10g\t%.10g\t%.10g\t%.10g\t%.10g\n", i, c.B0, c.B1, c.B2, c.A1, c.A2)
	}

	fmt.Fprintf(tw, "\nSection\tZeros\tPoles\n")
	fmt.Fprintf(tw, "-------\t-----\t-----\n")

	for i, c := range sos.Sections() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, formatRoots(c.Zeros()), formatRoots(c.Poles()))
	}

	fmt.Fprintf(tw, "\nOrder\t%d\n", sos.Order())
	fmt.Fprintf(tw, "Stable\t%t\n", sos.Stable())
	fmt.Fprintf(tw, "Min zero-phase length\t%d\n", zerophase.MinLength(sos))

	for _, f := range spec.Cutoffs {
		fmt.Fprintf(tw, "|H(%g Hz)|\t%.2f dB\n", f, sos.MagnitudeDB(f, spec.SampleRate))
	}

	if n := settlingLength(sos.ImpulseResponse(maxImpulseLength)); n < 0 {
		fmt.Fprintf(tw, "Impulse settles (-60 dB)\t> %d samples\n", maxImpulseLength)
	} else {
		fmt.Fprintf(tw, "Impulse settles (-60 dB)\t%d samples (%.3g s)\n", n, float64(n)/spec.SampleRate)
	}

	return tw.Flush()
}

// maxImpulseLength bounds the impulse response used for the settling time.
const maxImpulseLength = 1 << 17

func formatRoots(r [2]complex128) string {
	return fmt.Sprintf("%.4f, %.4f", r[0], r[1])
}

// settlingLength returns the number of samples after which |h| stays below
// -60 dB of its peak, or -1 when ir ends before that.
func settlingLength(ir []float64) int {
	peak := 0.0
	for _, v := range ir {
		peak = max(peak, math.Abs(v))
	}

	if peak == 0 {
		return 0
	}

	floor := 1e-3 * peak

	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) > floor {
			if i == len(ir)-1 {
				return -1
			}

			return i + 1
		}
	}

	return 0
}
