package smooth

import (
	"errors"
	"math"
	"testing"
)

func TestMovingAverageConstant(t *testing.T) {
	y := []float64{5, 5, 5, 5, 5, 5, 5}

	out, err := MovingAverage(y, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, v := range out {
		if v != 5 {
			t.Fatalf("constant signal changed at %d: %f", i, v)
		}
	}
}

func TestMovingAverageWindowValidation(t *testing.T) {
	if _, err := MovingAverage([]float64{1, 2, 3}, 4); !errors.Is(err, ErrBadWindow) {
		t.Fatalf("expected ErrBadWindow for even window, got %v", err)
	}

	if _, err := MovingAverage([]float64{1, 2, 3}, 1); !errors.Is(err, ErrBadWindow) {
		t.Fatalf("expected ErrBadWindow for tiny window, got %v", err)
	}
}

func TestMovingAverageDampsAlternatingNoise(t *testing.T) {
	n := 64

	y := make([]float64, n)
	for i := range y {
		y[i] = 10
		if i%2 == 0 {
			y[i] += 1
		} else {
			y[i] -= 1
		}
	}

	out, err := MovingAverage(y, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 2; i < n-2; i++ {
		if math.Abs(out[i]-10) > 0.21 {
			t.Fatalf("noise not damped at %d: %f", i, out[i])
		}
	}
}

func TestLowPassPreservesSlowSignal(t *testing.T) {
	n := 200

	y := make([]float64, n)
	for i := range y {
		y[i] = 3 + math.Sin(2*math.Pi*float64(i)/float64(n))
	}

	out, err := LowPass(y, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 5; i < n-5; i++ {
		if math.Abs(out[i]-y[i]) > 0.05 {
			t.Fatalf("slow signal distorted at %d: got %f want %f", i, out[i], y[i])
		}
	}
}

func TestLowPassRemovesFastRipple(t *testing.T) {
	n := 256

	clean := make([]float64, n)
	noisy := make([]float64, n)

	for i := range clean {
		clean[i] = 10 + 2*math.Sin(2*math.Pi*float64(i)/128)
		noisy[i] = clean[i] + 0.5*math.Sin(2*math.Pi*float64(i)/2.5)
	}

	out, err := LowPass(noisy, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var residual float64

	for i := 10; i < n-10; i++ {
		if d := math.Abs(out[i] - clean[i]); d > residual {
			residual = d
		}
	}

	if residual > 0.2 {
		t.Fatalf("fast ripple survived low pass: residual %f", residual)
	}
}

func TestLowPassCutoffValidation(t *testing.T) {
	if _, err := LowPass([]float64{1, 2, 3}, 0); !errors.Is(err, ErrBadCutoff) {
		t.Fatalf("expected ErrBadCutoff, got %v", err)
	}

	if _, err := LowPass([]float64{1, 2, 3}, 1.5); !errors.Is(err, ErrBadCutoff) {
		t.Fatalf("expected ErrBadCutoff, got %v", err)
	}
}

func TestLowPassUnityCutoffIsIdentity(t *testing.T) {
	y := []float64{1, 4, 2, 8, 5, 7}

	out, err := LowPass(y, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range y {
		if out[i] != y[i] {
			t.Fatalf("unity cutoff changed value at %d", i)
		}
	}
}
