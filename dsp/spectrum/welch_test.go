package spectrum

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-sleep/internal/testutil"
)

var sleepBands = []Band{
	{Name: "delta", Low: 0.1, High: 3},
	{Name: "theta", Low: 4, High: 10},
}

func TestWelch_Shape(t *testing.T) {
	x := testutil.DeterministicNoise(2, 1, 10000)

	psd, err := Welch(x, 1250, WithSegmentLength(1024))
	if err != nil {
		t.Fatal(err)
	}

	if len(psd.Freqs) != 513 || len(psd.Density) != 513 {
		t.Fatalf("bins = %d/%d, want 513", len(psd.Freqs), len(psd.Density))
	}

	if psd.Freqs[0] != 0 || psd.Freqs[512] != 625 {
		t.Fatalf("frequency range = [%v, %v], want [0, 625]", psd.Freqs[0], psd.Freqs[512])
	}

	testutil.RequireNonNegative(t, psd.Density)
}

func TestWelch_DominantBand(t *testing.T) {
	const rate = 1250.0

	tests := []struct {
		freq float64
		want string
	}{
		{1.5, "delta"},
		{6, "theta"},
	}

	for _, tt := range tests {
		x := testutil.DeterministicSine(tt.freq, rate, 1, 20000)
		noise := testutil.DeterministicNoise(3, 0.1, len(x))

		for i := range x {
			x[i] += noise[i]
		}

		psd, err := Welch(x, rate, WithSegmentLength(4096))
		if err != nil {
			t.Fatal(err)
		}

		if got := sleepBands[psd.Dominant(sleepBands)].Name; got != tt.want {
			t.Errorf("%g Hz: dominant band = %s, want %s", tt.freq, got, tt.want)
		}
	}
}

func TestBandPSD(t *testing.T) {
	x := testutil.DeterministicSine(6, 1250, 1, 20000)

	powers, err := BandPSD(x, 1250, sleepBands, WithSegmentLength(4096), WithOverlap(0.75))
	if err != nil {
		t.Fatal(err)
	}

	if len(powers) != 2 {
		t.Fatalf("len = %d, want 2", len(powers))
	}

	if powers[1] < 100*powers[0] {
		t.Fatalf("theta %g should dominate delta %g", powers[1], powers[0])
	}
}

func TestWelch_ShortSignalUsesOneSegment(t *testing.T) {
	psd, err := Welch(testutil.DeterministicNoise(1, 1, 301), 100)
	if err != nil {
		t.Fatal(err)
	}

	if len(psd.Freqs) != 151 {
		t.Fatalf("bins = %d, want 151", len(psd.Freqs))
	}
}

func TestWelch_Errors(t *testing.T) {
	if _, err := Welch([]float64{1, 2}, 100); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short: %v", err)
	}

	if _, err := Welch(make([]float64, 100), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("rate: %v", err)
	}

	if got := (PSD{}).Dominant(nil); got != -1 {
		t.Fatalf("Dominant(nil) = %d, want -1", got)
	}
}
