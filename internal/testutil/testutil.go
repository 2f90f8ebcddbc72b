// Package testutil builds synthetic Raman spectra for package tests.
package testutil

import (
	"math"
	"testing"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/spectrum"
)

// Axis returns n wavenumber samples starting at start with the given step.
func Axis(start, step float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = start + step*float64(i)
	}
	return x
}

// Trace evaluates background(x) plus Gaussian bands over the axis. Each band
// is [amplitude, center, sigma]. A nil background means zero.
func Trace(x []float64, background func(x float64) float64, bands ...[3]float64) []float64 {
	y := make([]float64, len(x))

	for i, xi := range x {
		if background != nil {
			y[i] = background(xi)
		}

		for _, b := range bands {
			amp, mu, sigma := b[0], b[1], b[2]
			d := (xi - mu) / sigma
			y[i] += amp * math.Exp(-0.5*d*d)
		}
	}

	return y
}

// Spectrum wraps an axis and trace into a validated spectrum, failing t on
// construction errors.
func Spectrum(t *testing.T, x, y []float64) *spectrum.Spectrum {
	t.Helper()

	s, err := spectrum.New(x, y)
	if err != nil {
		t.Fatalf("building test spectrum: %v", err)
	}

	return s
}
