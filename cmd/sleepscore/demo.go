package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-sleep/dsp/conv"
	"github.com/cwbudde/algo-sleep/dsp/core"
	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
	"github.com/cwbudde/algo-sleep/dsp/resample"
	"github.com/cwbudde/algo-sleep/dsp/spectrum"
	"github.com/cwbudde/algo-sleep/internal/synth"
	"github.com/cwbudde/algo-sleep/measure/sleep"
	"github.com/cwbudde/algo-sleep/stats/frequency"
	timestats "github.com/cwbudde/algo-sleep/stats/time"
)

// maxAlignLag bounds the zero-phase alignment search, in decimated samples.
const maxAlignLag = 64

func demoCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Score a synthetic recording with known sleep structure",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Recording length in seconds",
				Value:   60,
			},
			&cli.FloatFlag{
				Name:    "sample-rate",
				Aliases: []string{"s"},
				Usage:   "Raw sample rate in Hz",
				Value:   sleep.DefaultSampleRate,
			},
			&cli.FloatFlag{
				Name:  "noise",
				Usage: "Background noise standard deviation",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed",
				Value: 6,
			},
			&cli.IntFlag{
				Name:    "factor",
				Aliases: []string{"q"},
				Usage:   "Decimation factor",
				Value:   sleep.DefaultFactor,
			},
			&cli.IntFlag{
				Name:  "order",
				Usage: "Band filter order",
				Value: sleep.DefaultOrder,
			},
			&cli.BoolFlag{
				Name:  "iir",
				Usage: "Use the IIR anti-aliasing filter instead of FIR",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := synth.DefaultConfig()
			cfg.Duration = cmd.Float("duration")
			cfg.SampleRate = cmd.Float("sample-rate")
			cfg.Noise = cmd.Float("noise")

			lfp, acc, err := synth.Generate(cfg, synth.NewSource(uint64(cmd.Int("seed"))))
			if err != nil {
				return err
			}

			logger.Info("generated recording",
				zap.Float64("duration_s", cfg.Duration),
				zap.Int("samples", len(lfp)),
			)

			designer := design.NewDesigner(design.WithLogger(logger))

			opts := []sleep.Option{
				sleep.WithSampleRate(cfg.SampleRate),
				sleep.WithFactor(cmd.Int("factor")),
				sleep.WithOrder(cmd.Int("order")),
				sleep.WithDesigner(designer),
				sleep.WithLogger(logger),
			}
			if cmd.Bool("iir") {
				opts = append(opts, sleep.WithAntiAlias(resample.NewIIRAntiAlias(designer)))
			}

			a, err := sleep.NewAnalyzer(opts...)
			if err != nil {
				return err
			}

			res, err := a.Compute(lfp, acc)
			if err != nil {
				return err
			}

			rep, err := buildReport(a, lfp, res)
			if err != nil {
				return err
			}

			stats := designer.Stats()
			logger.Debug("filter cache", zap.Uint64("hits", stats.Hits), zap.Uint64("misses", stats.Misses))

			return rep.write(w)
		},
	}
}

type segmentRow struct {
	name       string
	from, to   float64 // seconds
	summary    timestats.Summary
	bandPower  []float64 // delta, theta from the Welch PSD
	dominant   string
	peakFreq   float64
	flatness   float64
	hasSpectra bool
}

type report struct {
	rate    float64
	samples int
	ratio   []segmentRow
	motion  []segmentRow
	lag     int
}

func buildReport(a *sleep.Analyzer, lfp []float64, res sleep.Result) (*report, error) {
	cfg := a.Config()
	rep := &report{rate: res.Rate, samples: len(res.Ratio)}

	dec, err := a.Decimate(lfp)
	if err != nil {
		return nil, err
	}

	bands := []spectrum.Band{
		{Name: "delta", Low: cfg.Delta.Low, High: cfg.Delta.High},
		{Name: "theta", Low: cfg.Theta.Low, High: cfg.Theta.High},
	}

	for _, seg := range synth.Thirds(len(res.Ratio)) {
		row := segmentRow{
			name:    seg.Name,
			from:    float64(seg.Start) / res.Rate,
			to:      float64(seg.End) / res.Rate,
			summary: timestats.Summarize(res.Ratio[seg.Start:seg.End]),
		}

		psd, err := spectrum.Welch(dec[seg.Start:seg.End], res.Rate)
		if err == nil {
			row.hasSpectra = true
			for _, b := range bands {
				row.bandPower = append(row.bandPower, psd.BandPower(b.Low, b.High))
			}

			row.dominant = bands[psd.Dominant(bands)].Name

			if fs, err := frequency.Calculate(psd.Freqs, psd.Density, cfg.Delta.Low, cfg.Theta.High); err == nil {
				row.peakFreq, row.flatness = fs.PeakFreq, fs.Flatness
			}
		}

		rep.ratio = append(rep.ratio, row)
	}

	for _, seg := range synth.Quarters(len(res.Motion)) {
		rep.motion = append(rep.motion, segmentRow{
			name:    seg.Name,
			from:    float64(seg.Start) / res.Rate,
			to:      float64(seg.End) / res.Rate,
			summary: timestats.Summarize(res.Motion[seg.Start:seg.End]),
		})
	}

	// The theta-filtered trace must line up with its input.
	sos, err := a.Designer().Design(design.Spec{
		Order:      cfg.Order,
		Cutoffs:    []float64{cfg.Theta.Low, cfg.Theta.High},
		Kind:       design.Bandpass,
		SampleRate: res.Rate,
	})
	if err != nil {
		return nil, err
	}

	filtered, err := zerophase.Apply(sos, dec)
	if err != nil {
		return nil, err
	}

	rep.lag, err = conv.Lag(dec, filtered, min(maxAlignLag, len(dec)-1))
	if err != nil {
		return nil, err
	}

	return rep, nil
}

func (r *report) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Output rate\t%g Hz\n", r.rate)
	fmt.Fprintf(tw, "Samples\t%d\n", r.samples)
	fmt.Fprintf(tw, "Theta alignment lag\t%d samples\n\n", r.lag)

	fmt.Fprintf(tw, "LFP segment\tSpan [s]\tRatio mean\tRatio RMS\tDelta [dB]\tTheta [dB]\tDominant\tPeak [Hz]\tFlatness\n")
	fmt.Fprintf(tw, "-----------\t--------\t----------\t---------\t----------\t----------\t--------\t---------\t--------\n")

	for _, row := range r.ratio {
		delta, theta, dominant, peak, flat := "-", "-", "-", "-", "-"
		if row.hasSpectra {
			delta = fmt.Sprintf("%.1f", core.LinearPowerToDB(row.bandPower[0]))
			theta = fmt.Sprintf("%.1f", core.LinearPowerToDB(row.bandPower[1]))
			dominant = row.dominant
			peak = fmt.Sprintf("%.2f", row.peakFreq)
			flat = fmt.Sprintf("%.3f", row.flatness)
		}

		fmt.Fprintf(tw, "%s\t%.1f-%.1f\t%.4g\t%.4g\t%s\t%s\t%s\t%s\t%s\n",
			row.name, row.from, row.to, row.summary.Mean, row.summary.RMS, delta, theta, dominant, peak, flat)
	}

	fmt.Fprintf(tw, "\nACC segment\tSpan [s]\tMotion RMS\tMotion max\n")
	fmt.Fprintf(tw, "-----------\t--------\t----------\t----------\n")

	for _, row := range r.motion {
		fmt.Fprintf(tw, "%s\t%.1f-%.1f\t%.4g\t%.4g\n",
			row.name, row.from, row.to, row.summary.RMS, row.summary.Max)
	}

	return tw.Flush()
}
