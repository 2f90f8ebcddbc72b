// Package smooth provides light denoising used ahead of peak detection.
//
// Two filters are offered: a centered moving average and an FFT low-pass.
// Both preserve length and leave the wavenumber axis untouched, so peak
// positions survive smoothing. Smoothing is applied to the detection copy of
// a spectrum only; fitting always runs against the unsmoothed data.
package smooth

import (
	"errors"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by smoothing.
var (
	ErrBadWindow = errors.New("smooth: window must be odd and at least 3")
	ErrBadCutoff = errors.New("smooth: cutoff must be in (0, 1]")
)

// MovingAverage returns the centered moving average of y with the given odd
// window length. Edges use a shrunken window so no samples are lost.
func MovingAverage(y []float64, window int) ([]float64, error) {
	if window < 3 || window%2 == 0 {
		return nil, ErrBadWindow
	}

	n := len(y)
	out := make([]float64, n)
	half := window / 2

	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}

		hi := i + half
		if hi >= n {
			hi = n - 1
		}

		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += y[j]
		}

		out[i] = sum / float64(hi-lo+1)
	}

	return out, nil
}

// LowPass attenuates high spatial frequencies of y by zeroing FFT bins above
// cutoff (a fraction of the Nyquist bin, in (0, 1]).
//
// The signal is edge-padded to the next power of two before the transform so
// the FFT plan size is valid and wrap-around leakage stays off the spectrum
// ends. The inverse transform is normalized by the plan, so the output needs
// no further scaling.
func LowPass(y []float64, cutoff float64) ([]float64, error) {
	if cutoff <= 0 || cutoff > 1 {
		return nil, ErrBadCutoff
	}

	n := len(y)
	if n == 0 {
		return nil, nil
	}

	if cutoff == 1 {
		out := make([]float64, n)
		copy(out, y)

		return out, nil
	}

	fftSize := nextPowerOf2(2 * n)

	in := make([]complex128, fftSize)
	for i := 0; i < fftSize; i++ {
		switch {
		case i < n:
			in[i] = complex(y[i], 0)
		case i < n+(fftSize-n)/2:
			in[i] = complex(y[n-1], 0) // right edge hold
		default:
			in[i] = complex(y[0], 0) // wrap back toward the left edge
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	freq := make([]complex128, fftSize)

	err = plan.Forward(freq, in)
	if err != nil {
		return nil, err
	}

	// Zero every bin above the cutoff, keeping conjugate symmetry so the
	// inverse transform stays real.
	limit := int(cutoff * float64(fftSize/2))
	if limit < 1 {
		limit = 1
	}

	for i := limit + 1; i <= fftSize/2; i++ {
		freq[i] = 0
		freq[fftSize-i] = 0
	}

	err = plan.Inverse(in, freq)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(in[i])
	}

	return out, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
