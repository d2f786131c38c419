// Package sleep derives the inputs of a REM sleep classifier from raw
// recordings.
//
// Two signals are produced at a common decimated rate:
//
//   - Ratio: z-scored theta band power divided by z-scored delta band power
//     of a local field potential (LFP). Band power is the squared envelope
//     of the zero-phase band-passed, decimated signal.
//   - Motion: the time derivative of the decimated accelerometer trace.
//
// Both branches decimate by the same factor from the same raw rate, so
// sample i of each output refers to the same instant.
//
// # Usage
//
//	a, err := sleep.NewAnalyzer(sleep.WithSampleRate(20000), sleep.WithFactor(16))
//	if err != nil {
//		return err
//	}
//	res, err := a.Compute(lfp, acc)
//	fmt.Println(len(res.Ratio), len(res.Motion), res.Rate)
package sleep
