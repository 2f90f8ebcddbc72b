// Package peaks finds and fits vibrational peaks in baseline-corrected,
// normalized Raman spectra.
//
// Detection scans for local maxima above adaptive height and prominence
// thresholds derived from a robust noise estimate, so the same configuration
// works across normalization scales. Each candidate is then fitted with a
// four-parameter Gaussian (amplitude, center, sigma, vertical offset) by
// Nelder-Mead least squares over a local window. Fits that fail the quality
// gate are kept as rejected records rather than dropped, so a run can report
// why a candidate did not make it into the statistics.
package peaks

import (
	"errors"
	"fmt"
	"math"
)

// FWHMFactor converts a Gaussian sigma to full width at half maximum:
// FWHM = 2*sqrt(2*ln2) * sigma.
var FWHMFactor = 2 * math.Sqrt(2*math.Ln2)

// Reject reasons recorded on fitted peaks that fail the quality gate.
const (
	RejectNonConvergence = "fit did not converge"
	RejectNonPhysical    = "non-physical sigma"
	RejectOffCenter      = "fitted center left the fit window"
	RejectLowR2          = "R2 below acceptance threshold"
)

// Errors returned by detection configuration.
var (
	ErrBadFactor    = errors.New("peaks: threshold factors must be non-negative")
	ErrBadR2        = errors.New("peaks: R2 cutoff must be in [0, 1]")
	ErrBadHalfWidth = errors.New("peaks: fit half width must be at least 3 points")
	ErrShortInput   = errors.New("peaks: input too short for detection")
)

// Peak is one fitted candidate.
//
// Center and R2 carry 6 decimals, FWHM, Area and Height 4, matching the
// emitted record precision. The raw fit parameters (Amplitude, Mean, Sigma,
// Offset) keep full precision for downstream computation.
type Peak struct {
	Center float64
	Height float64
	Area   float64
	FWHM   float64
	R2     float64

	Amplitude float64
	Mean      float64
	Sigma     float64
	Offset    float64

	Accepted     bool
	RejectReason string
}

// Config holds detection and fit-acceptance parameters.
type Config struct {
	// HeightFactor scales the noise estimate into the minimum height above
	// the median a candidate must reach.
	HeightFactor float64
	// ProminenceFactor scales the noise estimate into the minimum
	// prominence of a candidate.
	ProminenceFactor float64
	// MinR2 is the acceptance cutoff for the fit quality.
	MinR2 float64
	// FitHalfWidth is the number of points on each side of a candidate
	// included in its fit window.
	FitHalfWidth int
	// MaxPeaks caps the number of candidates (strongest first); 0 means
	// unlimited.
	MaxPeaks int
	// SmoothingWindow enables moving-average pre-smoothing of the
	// detection copy when >= 3. Fitting always uses the raw data.
	SmoothingWindow int
	// LowPassCutoff enables FFT low-pass pre-smoothing of the detection
	// copy when in (0, 1).
	LowPassCutoff float64
}

// DefaultConfig returns the documented detection defaults.
func DefaultConfig() Config {
	return Config{
		HeightFactor:     5.0,
		ProminenceFactor: 3.0,
		MinR2:            0.95,
		FitHalfWidth:     20,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithHeightFactor sets the height threshold multiplier.
func WithHeightFactor(f float64) Option {
	return func(cfg *Config) {
		if f >= 0 {
			cfg.HeightFactor = f
		}
	}
}

// WithProminenceFactor sets the prominence threshold multiplier.
func WithProminenceFactor(f float64) Option {
	return func(cfg *Config) {
		if f >= 0 {
			cfg.ProminenceFactor = f
		}
	}
}

// WithMinR2 sets the fit acceptance cutoff.
func WithMinR2(r2 float64) Option {
	return func(cfg *Config) {
		if r2 >= 0 && r2 <= 1 {
			cfg.MinR2 = r2
		}
	}
}

// WithFitHalfWidth sets the fit window half width in points.
func WithFitHalfWidth(w int) Option {
	return func(cfg *Config) {
		if w >= 3 {
			cfg.FitHalfWidth = w
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

// Validate checks the configuration.
func (cfg Config) Validate() error {
	if cfg.HeightFactor < 0 || cfg.ProminenceFactor < 0 {
		return ErrBadFactor
	}

	if cfg.MinR2 < 0 || cfg.MinR2 > 1 {
		return ErrBadR2
	}

	if cfg.FitHalfWidth < 3 {
		return ErrBadHalfWidth
	}

	return nil
}

// round4 and round6 implement the emitted record precision.
func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// DetectAndFit runs detection followed by per-candidate Gaussian fitting and
// returns all fitted candidates, accepted and rejected alike, ordered by
// center wavenumber.
func DetectAndFit(wavenumber, intensity []float64, cfg Config) ([]Peak, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if len(wavenumber) != len(intensity) {
		return nil, fmt.Errorf("peaks: axis length %d != intensity length %d", len(wavenumber), len(intensity))
	}

	candidates, err := Detect(intensity, cfg)
	if err != nil {
		return nil, err
	}

	out := make([]Peak, 0, len(candidates))
	for _, idx := range candidates {
		out = append(out, fitCandidate(wavenumber, intensity, idx, cfg))
	}

	return out, nil
}
