package sleep_test

import (
	"fmt"

	"github.com/cwbudde/algo-sleep/internal/synth"
	"github.com/cwbudde/algo-sleep/measure/sleep"
)

func ExampleAnalyzer_Compute() {
	cfg := synth.DefaultConfig()
	cfg.Duration = 6

	lfp, acc, err := synth.Generate(cfg, synth.NewSource(6))
	if err != nil {
		fmt.Println(err)
		return
	}

	a, err := sleep.NewAnalyzer(sleep.WithSampleRate(cfg.SampleRate), sleep.WithFactor(16))
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := a.Compute(lfp, acc)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("ratio=%d motion=%d rate=%g\n", len(res.Ratio), len(res.Motion), res.Rate)
	// Output:
	// ratio=7500 motion=7500 rate=1250
}

func ExampleNormalizedRatio() {
	_, err := sleep.NormalizedRatio([]float64{1, 2, 3}, []float64{4, 4, 4})
	fmt.Println(err)
	// Output:
	// sleep: degenerate signal: delta power: stats: zero variance: constant value 4 over 3 samples
}
