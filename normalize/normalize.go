// Package normalize rescales baseline-corrected Raman intensities.
//
// The methods form a closed enum so the full correction/normalization grid
// can be enumerated at compile time. All methods are pure scalar rescalings
// except MinMax, which also shifts the minimum to zero; none of them change
// where features sit on the wavenumber axis.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Errors returned by normalization. All of them indicate a degenerate
// denominator and are fatal to the processing combination that hit them.
var (
	ErrUnknownMethod   = errors.New("normalize: unknown method")
	ErrEmpty           = errors.New("normalize: empty input")
	ErrDegenerateRange = errors.New("normalize: max equals min")
	ErrZeroArea        = errors.New("normalize: spectrum area is zero")
	ErrZeroPeak        = errors.New("normalize: peak intensity is zero")
	ErrZeroNorm        = errors.New("normalize: euclidean norm is zero")
)

// eps is the relative threshold below which a denominator counts as zero.
const eps = 1e-12

// Method identifies a normalization algorithm.
type Method int

const (
	MethodNone Method = iota
	MethodMinMax
	MethodArea
	MethodPeak
	MethodVector
)

// Methods returns all normalization methods in grid order. MethodNone comes
// first because it is the delta-metric reference.
func Methods() []Method {
	return []Method{MethodNone, MethodMinMax, MethodArea, MethodVector}
}

// AllMethods returns every method this package implements, including those
// outside the default sweep grid.
func AllMethods() []Method {
	return []Method{MethodNone, MethodMinMax, MethodArea, MethodPeak, MethodVector}
}

// String returns the canonical lower-case method name.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodMinMax:
		return "minmax"
	case MethodArea:
		return "area"
	case MethodPeak:
		return "peak"
	case MethodVector:
		return "vector"
	default:
		return fmt.Sprintf("normalize.Method(%d)", int(m))
	}
}

// ParseMethod resolves a method name as used in configuration files.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "none", "":
		return MethodNone, nil
	case "minmax", "min-max":
		return MethodMinMax, nil
	case "area":
		return MethodArea, nil
	case "peak", "max":
		return MethodPeak, nil
	case "vector", "l2":
		return MethodVector, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Normalize rescales intensity using the given method and returns a new
// slice. The wavenumber axis is only consulted by MethodArea (trapezoidal
// integration); it must have the same length as intensity.
func Normalize(wavenumber, intensity []float64, method Method) ([]float64, error) {
	if len(intensity) == 0 {
		return nil, ErrEmpty
	}

	switch method {
	case MethodNone:
		out := make([]float64, len(intensity))
		copy(out, intensity)

		return out, nil

	case MethodMinMax:
		return minMax(intensity)

	case MethodArea:
		area := integrate.Trapezoidal(wavenumber, intensity)
		if math.Abs(area) <= eps*scaleOf(intensity) {
			return nil, ErrZeroArea
		}

		return scaled(intensity, 1/area), nil

	case MethodPeak:
		peak := floats.Max(intensity)
		if math.Abs(peak) <= eps {
			return nil, ErrZeroPeak
		}

		return scaled(intensity, 1/peak), nil

	case MethodVector:
		norm := floats.Norm(intensity, 2)
		if norm <= eps {
			return nil, ErrZeroNorm
		}

		return scaled(intensity, 1/norm), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}
}

func minMax(intensity []float64) ([]float64, error) {
	lo := floats.Min(intensity)
	hi := floats.Max(intensity)

	span := hi - lo
	if span <= eps*math.Max(math.Abs(hi), 1) {
		return nil, ErrDegenerateRange
	}

	out := make([]float64, len(intensity))
	for i, v := range intensity {
		out[i] = (v - lo) / span
	}

	return out, nil
}

// scaled returns s*x through the SIMD scale kernel.
func scaled(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, s)

	return out
}

// scaleOf returns a magnitude reference used for relative zero checks.
func scaleOf(x []float64) float64 {
	m := 0.0

	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}

	if m == 0 {
		return 1
	}

	return m
}
