package peaks

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// gaussian evaluates amp * exp(-(x-mu)^2 / (2 sigma^2)) + off.
func gaussian(x, amp, mu, sigma, off float64) float64 {
	d := (x - mu) / sigma

	return amp*math.Exp(-0.5*d*d) + off
}

// fitCandidate fits a Gaussian to the window around index idx and builds the
// emitted Peak record. Fit failures come back as rejected records, never as
// errors: a bad candidate must not take its combination down.
func fitCandidate(x, y []float64, idx int, cfg Config) Peak {
	lo := idx - cfg.FitHalfWidth
	if lo < 0 {
		lo = 0
	}

	hi := idx + cfg.FitHalfWidth + 1
	if hi > len(y) {
		hi = len(y)
	}

	wx := x[lo:hi]
	wy := y[lo:hi]

	off0 := floats.Min(wy)
	amp0 := y[idx] - off0
	mu0 := x[idx]
	sigma0 := sigmaGuess(wx, wy, idx-lo, amp0, off0)

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			if p[2] == 0 {
				// Degenerate sigma would produce NaN residuals at the apex.
				return math.Inf(1)
			}

			sse := 0.0
			for i := range wx {
				r := gaussian(wx[i], p[0], p[1], p[2], p[3]) - wy[i]
				sse += r * r
			}

			return sse
		},
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Relative:   1e-12,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, []float64{amp0, mu0, sigma0, off0}, settings, &optimize.NelderMead{})
	if err != nil || result == nil {
		return rejected(mu0, RejectNonConvergence)
	}

	amp, mu, sigma, off := result.X[0], result.X[1], result.X[2], result.X[3]
	// The Gaussian is even in sigma; fold the sign away before the
	// physicality check.
	sigma = math.Abs(sigma)

	p := Peak{
		Amplitude: amp,
		Mean:      mu,
		Sigma:     sigma,
		Offset:    off,
	}

	if sigma <= 0 || !finite(amp) || !finite(mu) || !finite(sigma) || !finite(off) || amp <= 0 {
		p.RejectReason = RejectNonPhysical
		p.Center = round6(mu0)

		return p
	}

	if mu < wx[0] || mu > wx[len(wx)-1] {
		p.RejectReason = RejectOffCenter
		p.Center = round6(mu)

		return p
	}

	r2 := rSquared(wx, wy, amp, mu, sigma, off)

	p.Center = round6(mu)
	p.Height = round4(amp)
	p.FWHM = round4(FWHMFactor * sigma)
	p.Area = round4(amp * sigma * math.Sqrt(2*math.Pi))
	p.R2 = round6(r2)

	if r2 < cfg.MinR2 {
		p.RejectReason = RejectLowR2

		return p
	}

	p.Accepted = true

	return p
}

// sigmaGuess estimates the initial sigma from the half-maximum crossings
// around the apex. Falls back to a quarter of the window span when the
// crossings cannot be found.
func sigmaGuess(wx, wy []float64, apex int, amp, off float64) float64 {
	half := off + amp/2

	left := 0
	for j := apex; j >= 0; j-- {
		if wy[j] <= half {
			left = j
			break
		}
	}

	right := len(wy) - 1
	for j := apex; j < len(wy); j++ {
		if wy[j] <= half {
			right = j
			break
		}
	}

	width := wx[right] - wx[left]
	if width > 0 {
		return width / FWHMFactor
	}

	span := wx[len(wx)-1] - wx[0]
	if span > 0 {
		return span / 4
	}

	return 1
}

// rSquared is the coefficient of determination of the fit over the window.
func rSquared(wx, wy []float64, amp, mu, sigma, off float64) float64 {
	mean := stat.Mean(wy, nil)

	var ssRes, ssTot float64

	for i := range wx {
		r := wy[i] - gaussian(wx[i], amp, mu, sigma, off)
		ssRes += r * r

		d := wy[i] - mean
		ssTot += d * d
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}

		return 0
	}

	return 1 - ssRes/ssTot
}

func rejected(center float64, reason string) Peak {
	return Peak{
		Center:       round6(center),
		RejectReason: reason,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
