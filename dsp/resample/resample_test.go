package resample

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-sleep/dsp/filter/design"
	"github.com/cwbudde/algo-sleep/dsp/filter/zerophase"
	"github.com/cwbudde/algo-sleep/dsp/window"
	"github.com/cwbudde/algo-sleep/internal/testutil"
)

func strategies() map[string]AntiAlias {
	return map[string]AntiAlias{
		"fir": NewFIRAntiAlias(),
		"iir": NewIIRAntiAlias(nil),
	}
}

func TestDecimate_LengthAndRate(t *testing.T) {
	for name, aa := range strategies() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range []struct{ n, factor, want int }{
				{1000, 2, 500},
				{1001, 2, 501},
				{1000, 16, 63},
				{960, 16, 60},
				{997, 7, 143},
			} {
				x := testutil.DeterministicNoise(1, 1, tc.n)

				y, rate, err := Decimate(x, tc.factor, 20000, WithAntiAlias(aa))
				if err != nil {
					t.Fatalf("Decimate(n=%d, q=%d) error = %v", tc.n, tc.factor, err)
				}

				if len(y) != tc.want {
					t.Fatalf("len = %d, want %d", len(y), tc.want)
				}

				if rate != 20000/float64(tc.factor) {
					t.Fatalf("rate = %v, want %v", rate, 20000/float64(tc.factor))
				}
			}
		})
	}
}

func TestDecimate_InvalidFactor(t *testing.T) {
	for _, q := range []int{-2, 0, 1} {
		if _, _, err := Decimate([]float64{1, 2, 3}, q, 100); !errors.Is(err, ErrInvalidFactor) {
			t.Fatalf("factor %d: error = %v, want ErrInvalidFactor", q, err)
		}

		for name, aa := range strategies() {
			if _, err := aa.Decimate([]float64{1, 2, 3}, q); !errors.Is(err, ErrInvalidFactor) {
				t.Fatalf("%s factor %d: error = %v, want ErrInvalidFactor", name, q, err)
			}
		}
	}
}

func TestDecimate_InvalidRate(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, _, err := Decimate([]float64{1, 2, 3}, 2, r); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("rate %v: error = %v, want ErrInvalidRate", r, err)
		}
	}
}

func TestDecimate_DoesNotModifyInput(t *testing.T) {
	for name, aa := range strategies() {
		x := testutil.DeterministicNoise(9, 1, 500)
		orig := slices.Clone(x)

		if _, _, err := Decimate(x, 4, 1000, WithAntiAlias(aa)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		if !slices.Equal(x, orig) {
			t.Fatalf("%s modified its input", name)
		}
	}
}

func TestDecimate_PassesLowFrequency(t *testing.T) {
	const (
		rate   = 1000.0
		factor = 4
	)

	x := testutil.DeterministicSine(5, rate, 1, 4000)
	want := testutil.DeterministicSine(5, rate/factor, 1, 1000)

	tolerance := map[string]float64{"fir": 1e-2, "iir": 1e-3}

	for name, aa := range strategies() {
		t.Run(name, func(t *testing.T) {
			y, _, err := Decimate(x, factor, rate, WithAntiAlias(aa))
			if err != nil {
				t.Fatal(err)
			}

			testutil.RequireSliceNearlyEqual(t, y[100:900], want[100:900], tolerance[name])
		})
	}
}

func TestDecimate_RejectsAliases(t *testing.T) {
	const rate = 1000.0

	// 400 Hz folds onto 100 Hz after decimating by 4 without filtering.
	x := testutil.DeterministicSine(400, rate, 1, 4000)

	for name, aa := range strategies() {
		t.Run(name, func(t *testing.T) {
			y, _, err := Decimate(x, 4, rate, WithAntiAlias(aa))
			if err != nil {
				t.Fatal(err)
			}

			peak := 0.0
			for _, v := range y[100:900] {
				peak = math.Max(peak, math.Abs(v))
			}

			if peak > 1e-2 {
				t.Fatalf("alias peak = %v, want < 1e-2", peak)
			}
		})
	}
}

func TestFIRAntiAlias_Taps(t *testing.T) {
	h := NewFIRAntiAlias().Taps(16)
	if len(h) != 321 {
		t.Fatalf("len = %d, want 321", len(h))
	}

	sum := 0.0
	for i, v := range h {
		sum += v

		if math.Abs(v-h[len(h)-1-i]) > 1e-15 {
			t.Fatalf("taps not symmetric at %d", i)
		}
	}

	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", sum)
	}

	if got := len(NewFIRAntiAlias(WithTaps(40)).Taps(4)); got != 41 {
		t.Fatalf("WithTaps(40) length = %d, want 41", got)
	}

	if got := len(NewFIRAntiAlias(WithTaps(1)).Taps(4)); got != 81 {
		t.Fatalf("WithTaps(1) length = %d, want default 81", got)
	}

	if got := len(NewFIRAntiAlias().Taps(2)); got != 41 {
		t.Fatalf("factor 2 length = %d, want 41", got)
	}
}

func TestFIRAntiAlias_StopbandAboveOutputNyquist(t *testing.T) {
	const (
		rate   = 20000.0
		factor = 16
	)

	// Output Nyquist is 625 Hz. Each tone folds below it without filtering.
	for _, tc := range []struct {
		freq, maxGain float64
	}{
		{freq: 700, maxGain: 0.1},
		{freq: 900, maxGain: 3e-3},
		{freq: 1200, maxGain: 3e-3},
		{freq: 2000, maxGain: 3e-3},
	} {
		x := testutil.DeterministicSine(tc.freq, rate, 1, 20000)

		y, _, err := Decimate(x, factor, rate)
		if err != nil {
			t.Fatal(err)
		}

		peak := 0.0
		for _, v := range y[20 : len(y)-20] {
			peak = math.Max(peak, math.Abs(v))
		}

		if peak > tc.maxGain {
			t.Fatalf("%g Hz: alias gain = %v, want < %v", tc.freq, peak, tc.maxGain)
		}
	}
}

func TestFIRAntiAlias_ConstantInterior(t *testing.T) {
	aa := NewFIRAntiAlias(WithWindow(window.TypeKaiser), WithKaiserBeta(6), WithTaps(63))
	x := testutil.DC(3, 800)

	y, err := aa.Decimate(x, 8)
	if err != nil {
		t.Fatal(err)
	}

	// Outputs whose taps are fully inside the signal see the DC gain of 1.
	testutil.RequireSliceNearlyEqual(t, y[4:96], testutil.DC(3, 92), 1e-12)

	if y[0] >= 3 {
		t.Fatalf("edge output %v should be attenuated by zero padding", y[0])
	}
}

func TestIIRAntiAlias_ShortInput(t *testing.T) {
	_, _, err := Decimate(make([]float64, 20), 4, 1000, WithAntiAlias(NewIIRAntiAlias(nil)))
	if !errors.Is(err, zerophase.ErrInvalidInput) {
		t.Fatalf("error = %v, want zerophase.ErrInvalidInput", err)
	}
}

func TestIIRAntiAlias_SharesDesigner(t *testing.T) {
	d := design.NewDesigner()
	aa := NewIIRAntiAlias(d)

	dec, err := NewDecimator(16, WithAntiAlias(aa))
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(4, 1, 2000)
	for range 3 {
		if _, _, err := dec.Process(x, 20000); err != nil {
			t.Fatal(err)
		}
	}

	if s := d.Stats(); s.Misses != 1 || s.Hits != 2 {
		t.Fatalf("Stats() = %+v, want 1 miss and 2 hits", s)
	}
}

func TestDecimator_Accessors(t *testing.T) {
	d, err := NewDecimator(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Factor() != 16 || d.OutputLength(100) != 7 || d.OutputLength(0) != 0 {
		t.Fatalf("Factor/OutputLength mismatch: %d %d", d.Factor(), d.OutputLength(100))
	}

	if _, ok := d.AntiAlias().(*FIRAntiAlias); !ok {
		t.Fatalf("default anti-alias = %T, want *FIRAntiAlias", d.AntiAlias())
	}
}
