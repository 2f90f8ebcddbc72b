// Package spectrum defines the immutable Raman spectrum type shared by all
// processing stages.
//
// A Spectrum is an ordered sequence of (wavenumber, intensity) pairs with
// strictly increasing wavenumbers. Construction validates the data once;
// afterwards the spectrum is read-only, so concurrent processing runs can
// share a single instance without synchronization.
package spectrum

import (
	"errors"
	"math"
)

// Errors returned by spectrum construction.
var (
	ErrEmpty          = errors.New("spectrum: empty input")
	ErrLengthMismatch = errors.New("spectrum: wavenumber and intensity lengths differ")
	ErrNonFinite      = errors.New("spectrum: non-finite value in input")
	ErrNotIncreasing  = errors.New("spectrum: wavenumbers must be strictly increasing")
	ErrTooShort       = errors.New("spectrum: need at least 4 points")
)

// Spectrum is an immutable Raman spectrum.
type Spectrum struct {
	wavenumber []float64 // cm^-1, strictly increasing
	intensity  []float64 // arbitrary counts
}

// New validates and copies the given axes into a Spectrum.
//
// The input must be non-empty, of equal length, finite everywhere, strictly
// increasing in wavenumber, and at least 4 points long (the minimum any
// baseline estimator can work with).
func New(wavenumber, intensity []float64) (*Spectrum, error) {
	if len(wavenumber) == 0 || len(intensity) == 0 {
		return nil, ErrEmpty
	}

	if len(wavenumber) != len(intensity) {
		return nil, ErrLengthMismatch
	}

	if len(wavenumber) < 4 {
		return nil, ErrTooShort
	}

	for i := range wavenumber {
		if !isFinite(wavenumber[i]) || !isFinite(intensity[i]) {
			return nil, ErrNonFinite
		}

		if i > 0 && wavenumber[i] <= wavenumber[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	s := &Spectrum{
		wavenumber: make([]float64, len(wavenumber)),
		intensity:  make([]float64, len(intensity)),
	}
	copy(s.wavenumber, wavenumber)
	copy(s.intensity, intensity)

	return s, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of points.
func (s *Spectrum) Len() int {
	return len(s.wavenumber)
}

// At returns the (wavenumber, intensity) pair at index i.
func (s *Spectrum) At(i int) (w, y float64) {
	return s.wavenumber[i], s.intensity[i]
}

// Wavenumbers returns a copy of the wavenumber axis.
func (s *Spectrum) Wavenumbers() []float64 {
	out := make([]float64, len(s.wavenumber))
	copy(out, s.wavenumber)

	return out
}

// Intensities returns a copy of the intensity values.
func (s *Spectrum) Intensities() []float64 {
	out := make([]float64, len(s.intensity))
	copy(out, s.intensity)

	return out
}

// Range returns the first and last wavenumber.
func (s *Spectrum) Range() (lo, hi float64) {
	return s.wavenumber[0], s.wavenumber[len(s.wavenumber)-1]
}
