package testutil

import (
	"math"
	"testing"
)

func TestAxisSpacing(t *testing.T) {
	x := Axis(100, 1, 5)

	if len(x) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(x))
	}

	if x[0] != 100 || x[4] != 104 {
		t.Fatalf("unexpected axis endpoints: %v", x)
	}
}

func TestTraceAddsBandsToBackground(t *testing.T) {
	x := Axis(900, 1, 201)
	y := Trace(x, func(x float64) float64 { return 10 }, [3]float64{100, 1000, 5})

	apex := 0
	for i := range x {
		if x[i] == 1000 {
			apex = i
		}
	}

	if math.Abs(y[apex]-110) > 1e-12 {
		t.Fatalf("apex value %f, want 110", y[apex])
	}

	if math.Abs(y[0]-10) > 1e-6 {
		t.Fatalf("far tail should sit on the background, got %f", y[0])
	}
}

func TestTraceNilBackground(t *testing.T) {
	x := Axis(0, 1, 3)
	y := Trace(x, nil)

	for i, v := range y {
		if v != 0 {
			t.Fatalf("index %d: expected zero trace, got %f", i, v)
		}
	}
}
