package normalize

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func testAxis(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 100 + float64(i)
	}

	return x
}

func TestNoneIsIdentity(t *testing.T) {
	y := []float64{1, 5, 2, 8}

	out, err := Normalize(testAxis(4), y, MethodNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range y {
		if out[i] != y[i] {
			t.Fatalf("identity changed value at %d: %f != %f", i, out[i], y[i])
		}
	}

	// Must be a copy, not an alias.
	out[0] = -1
	if y[0] != 1 {
		t.Fatalf("output aliases input")
	}
}

func TestMinMax(t *testing.T) {
	out, err := Normalize(testAxis(4), []float64{2, 4, 6, 10}, MethodMinMax)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(out[0], 0) || !almostEqual(out[3], 1) {
		t.Fatalf("expected endpoints 0 and 1, got %f and %f", out[0], out[3])
	}

	if !almostEqual(out[1], 0.25) {
		t.Fatalf("expected 0.25, got %f", out[1])
	}
}

func TestMinMaxDegenerate(t *testing.T) {
	_, err := Normalize(testAxis(4), []float64{3, 3, 3, 3}, MethodMinMax)
	if !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
}

func TestAreaIntegratesToOne(t *testing.T) {
	x := testAxis(101)

	y := make([]float64, len(x))
	for i := range y {
		d := (x[i] - 150) / 10
		y[i] = math.Exp(-0.5 * d * d)
	}

	out, err := Normalize(x, y, MethodArea)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Trapezoidal integral of the output must be 1.
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += 0.5 * (out[i] + out[i-1]) * (x[i] - x[i-1])
	}

	if !almostEqual(sum, 1) {
		t.Fatalf("expected unit area, got %f", sum)
	}
}

func TestAreaZero(t *testing.T) {
	_, err := Normalize(testAxis(4), []float64{0, 0, 0, 0}, MethodArea)
	if !errors.Is(err, ErrZeroArea) {
		t.Fatalf("expected ErrZeroArea, got %v", err)
	}

	// Antisymmetric signal: non-zero values, zero net area.
	_, err = Normalize(testAxis(4), []float64{-1, -1, 1, 1}, MethodArea)
	if !errors.Is(err, ErrZeroArea) {
		t.Fatalf("expected ErrZeroArea, got %v", err)
	}
}

func TestPeak(t *testing.T) {
	out, err := Normalize(testAxis(4), []float64{1, 2, 8, 4}, MethodPeak)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(out[2], 1) || !almostEqual(out[0], 0.125) {
		t.Fatalf("unexpected peak scaling: %v", out)
	}

	if _, err := Normalize(testAxis(4), []float64{0, 0, 0, 0}, MethodPeak); !errors.Is(err, ErrZeroPeak) {
		t.Fatalf("expected ErrZeroPeak, got %v", err)
	}
}

func TestVector(t *testing.T) {
	out, err := Normalize(testAxis(4), []float64{3, 0, 4, 0}, MethodVector)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	norm := 0.0
	for _, v := range out {
		norm += v * v
	}

	if !almostEqual(math.Sqrt(norm), 1) {
		t.Fatalf("expected unit L2 norm, got %f", math.Sqrt(norm))
	}

	if !almostEqual(out[0], 0.6) || !almostEqual(out[2], 0.8) {
		t.Fatalf("unexpected vector scaling: %v", out)
	}

	if _, err := Normalize(testAxis(4), []float64{0, 0, 0, 0}, MethodVector); !errors.Is(err, ErrZeroNorm) {
		t.Fatalf("expected ErrZeroNorm, got %v", err)
	}
}

func TestEmptyAndUnknown(t *testing.T) {
	if _, err := Normalize(nil, nil, MethodNone); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	if _, err := Normalize(testAxis(4), []float64{1, 2, 3, 4}, Method(42)); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	for _, m := range AllMethods() {
		got, err := ParseMethod(m.String())
		if err != nil {
			t.Fatalf("round trip failed for %v: %v", m, err)
		}

		if got != m {
			t.Fatalf("expected %v, got %v", m, got)
		}
	}
}

func TestGridOrder(t *testing.T) {
	grid := Methods()
	if len(grid) != 4 {
		t.Fatalf("sweep grid must have 4 normalization methods, got %d", len(grid))
	}

	if grid[0] != MethodNone {
		t.Fatalf("reference method must lead the grid")
	}
}
