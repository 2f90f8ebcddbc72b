// Package baseline removes slowly varying background from Raman spectra.
//
// Three interchangeable correctors are provided behind a closed [Method]
// enum: asymmetric reweighted penalized least squares (airPLS), masked
// polynomial fitting, and masked natural cubic spline fitting. All three
// return both the corrected intensities and the estimated baseline so
// callers can inspect what was subtracted.
package baseline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/spectrum"
)

// Errors returned by baseline correction.
var (
	ErrUnknownMethod = errors.New("baseline: unknown method")
	ErrBadLambda     = errors.New("baseline: lambda must be positive")
	ErrBadDegree     = errors.New("baseline: polynomial degree must be in [1, 9]")
	ErrBadAnchors    = errors.New("baseline: anchor count must be at least 4")
	ErrBadIterations = errors.New("baseline: iteration cap must be positive")
	ErrSingular      = errors.New("baseline: penalized system is not positive definite")
)

// Method identifies a baseline-correction algorithm.
type Method int

const (
	MethodAirPLS Method = iota
	MethodPolynomial
	MethodSpline
)

// Methods returns all baseline methods in grid order.
func Methods() []Method {
	return []Method{MethodAirPLS, MethodPolynomial, MethodSpline}
}

// String returns the canonical lower-case method name.
func (m Method) String() string {
	switch m {
	case MethodAirPLS:
		return "airpls"
	case MethodPolynomial:
		return "polynomial"
	case MethodSpline:
		return "spline"
	default:
		return fmt.Sprintf("baseline.Method(%d)", int(m))
	}
}

// ParseMethod resolves a method name as used in configuration files.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "airpls":
		return MethodAirPLS, nil
	case "polynomial", "poly":
		return MethodPolynomial, nil
	case "spline":
		return MethodSpline, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Config holds parameters for all baseline correctors. Fields irrelevant to
// the selected method are ignored.
type Config struct {
	// Lambda controls airPLS smoothness. Larger values produce stiffer
	// baselines. Typical Raman values are 1e4 .. 1e7.
	Lambda float64
	// MaxIterations caps the airPLS reweighting loop. Hitting the cap is
	// reported as non-convergence, not as an error.
	MaxIterations int
	// Tolerance is the relative weight-change threshold that ends the
	// airPLS loop early.
	Tolerance float64
	// Degree of the polynomial corrector.
	Degree int
	// Anchors is the number of spline anchor points.
	Anchors int
	// MaskFactor is the sigma-clipping factor of the peak-exclusion mask
	// used by the polynomial and spline correctors.
	MaskFactor float64
	// MaskIterations is the number of sigma-clipping passes.
	MaskIterations int
}

// DefaultConfig returns sensible defaults for zircon Raman spectra.
func DefaultConfig() Config {
	return Config{
		Lambda:         1e5,
		MaxIterations:  50,
		Tolerance:      1e-3,
		Degree:         3,
		Anchors:        12,
		MaskFactor:     2.0,
		MaskIterations: 3,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithLambda sets the airPLS smoothness parameter.
func WithLambda(lambda float64) Option {
	return func(cfg *Config) {
		if lambda > 0 {
			cfg.Lambda = lambda
		}
	}
}

// WithMaxIterations sets the airPLS iteration cap.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithTolerance sets the airPLS convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 {
			cfg.Tolerance = tol
		}
	}
}

// WithDegree sets the polynomial degree.
func WithDegree(degree int) Option {
	return func(cfg *Config) {
		if degree >= 1 {
			cfg.Degree = degree
		}
	}
}

// WithAnchors sets the spline anchor count.
func WithAnchors(n int) Option {
	return func(cfg *Config) {
		if n >= 4 {
			cfg.Anchors = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate checks the configuration for the given method.
func (cfg Config) Validate(method Method) error {
	switch method {
	case MethodAirPLS:
		if cfg.Lambda <= 0 {
			return ErrBadLambda
		}

		if cfg.MaxIterations <= 0 {
			return ErrBadIterations
		}
	case MethodPolynomial:
		if cfg.Degree < 1 || cfg.Degree > 9 {
			return ErrBadDegree
		}
	case MethodSpline:
		if cfg.Anchors < 4 {
			return ErrBadAnchors
		}
	default:
		return ErrUnknownMethod
	}

	return nil
}

// Result holds the outcome of a baseline correction.
type Result struct {
	// Corrected is the background-subtracted intensity.
	Corrected []float64
	// Baseline is the estimated background.
	Baseline []float64
	// Iterations is the number of reweighting passes used (airPLS only).
	Iterations int
	// Converged is false when airPLS hit its iteration cap. The best
	// estimate at the cap is still returned.
	Converged bool
}

// Correct estimates and subtracts the background of spec using the given
// method. The input spectrum is never modified.
func Correct(spec *spectrum.Spectrum, method Method, cfg Config) (Result, error) {
	err := cfg.Validate(method)
	if err != nil {
		return Result{}, err
	}

	x := spec.Wavenumbers()
	y := spec.Intensities()

	var base []float64

	res := Result{Converged: true}

	switch method {
	case MethodAirPLS:
		base, res.Iterations, res.Converged, err = airPLS(y, cfg)
	case MethodPolynomial:
		base, err = polynomialBaseline(x, y, cfg)
	case MethodSpline:
		base, err = splineBaseline(x, y, cfg)
	default:
		err = ErrUnknownMethod
	}

	if err != nil {
		return Result{}, err
	}

	res.Baseline = base
	res.Corrected = subtract(y, base)

	return res, nil
}

// subtract returns y - base using the SIMD vector kernels.
func subtract(y, base []float64) []float64 {
	neg := make([]float64, len(base))
	vecmath.ScaleBlock(neg, base, -1)

	out := make([]float64, len(y))
	copy(out, y)
	vecmath.AddBlockInPlace(out, neg)

	return out
}
