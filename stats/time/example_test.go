package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-sleep/stats/time"
)

func ExampleZScore() {
	z, _ := timestats.ZScore([]float64{1, 2, 3})
	fmt.Printf("%.3f %.3f %.3f\n", z[0], z[1], z[2])

	// Output:
	// -1.225 0.000 1.225
}

func ExampleSummarize() {
	s := timestats.Summarize([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f max=%.0f@%d\n", s.RMS, s.Max, s.MaxPos)

	// Output:
	// rms=1.0 max=1@0
}
