// Command sleepscore computes REM sleep classifier inputs and inspects the
// filters behind them.
//
// Usage:
//
//	sleepscore [--log-level level] [--debug] <command> [flags]
//
// Examples:
//
//	sleepscore demo --duration 60 --seed 6
//	sleepscore demo --noise 0.1 --iir
//	sleepscore design --kind bandpass --cutoff 4 --cutoff 10 --rate 1250
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	if err := newApp(os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sleepscore: %v\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "sleepscore",
		Usage:  "REM sleep classifier inputs from LFP and accelerometer traces",
		Writer: w,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Human-readable debug logging",
			},
		},
		Commands: []*cli.Command{
			demoCommand(w),
			designCommand(w),
		},
	}
}

// newLogger builds a production logger at the given level, or a development
// logger at debug level when debug is set.
func newLogger(level string, debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

func loggerFor(cmd *cli.Command) (*zap.Logger, error) {
	return newLogger(cmd.String("log-level"), cmd.Bool("debug"))
}
