package core

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sleep/internal/testutil"
)

func TestGradient_Uniform(t *testing.T) {
	y := []float64{1, 2, 4, 7, 11}
	x := []float64{0, 1, 2, 3, 4}

	got, err := Gradient(y, x)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 1.5, 2.5, 3.5, 4}, 1e-12)
}

func TestGradient_NonUniformQuadraticExactInterior(t *testing.T) {
	x := []float64{0, 0.5, 1.5, 1.75, 3}

	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * v
	}

	got, err := Gradient(y, x)
	if err != nil {
		t.Fatal(err)
	}

	// The centred scheme is exact for quadratics.
	for i := 1; i < len(x)-1; i++ {
		if math.Abs(got[i]-2*x[i]) > 1e-12 {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], 2*x[i])
		}
	}

	if math.Abs(got[0]-0.5) > 1e-12 {
		t.Fatalf("left edge = %v, want 0.5", got[0])
	}
}

func TestGradient_ScaledAxis(t *testing.T) {
	// Samples at 1250 Hz of a 3 units/s ramp.
	const rate = 1250.0

	x := make([]float64, 10)
	y := make([]float64, 10)

	for i := range x {
		x[i] = float64(i) / rate
		y[i] = 3 * x[i]
	}

	got, err := Gradient(y, x)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range got {
		if math.Abs(v-3) > 1e-9 {
			t.Fatalf("got[%d] = %v, want 3", i, v)
		}
	}
}

func TestGradient_TwoSamples(t *testing.T) {
	got, err := Gradient([]float64{1, 4}, []float64{0, 0.5})
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != 6 || got[1] != 6 {
		t.Fatalf("got %v, want [6 6]", got)
	}
}

func TestGradient_Errors(t *testing.T) {
	tests := []struct {
		name string
		y, x []float64
		want error
	}{
		{"empty", nil, nil, ErrInsufficientSamples},
		{"single", []float64{1}, []float64{0}, ErrInsufficientSamples},
		{"mismatch", []float64{1, 2}, []float64{0}, ErrLengthMismatch},
		{"repeated axis", []float64{1, 2, 3}, []float64{0, 1, 1}, ErrNonIncreasingAxis},
		{"nan axis", []float64{1, 2}, []float64{0, math.NaN()}, ErrNonIncreasingAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Gradient(tt.y, tt.x); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
