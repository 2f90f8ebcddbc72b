package baseline

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// airPLS estimates the baseline of y by adaptive iteratively reweighted
// penalized least squares (Zhang, Chen & Liang 2010).
//
// Each pass solves the banded system
//
//	(W + lambda * Dᵀ D) z = W y
//
// where D is the second-difference operator and W is a diagonal weight
// matrix. Points above the current estimate (peaks) get their weight driven
// to zero so successive estimates sink under the peaks while following the
// smooth background. Iteration stops when the relative weight change falls
// below cfg.Tolerance, or at cfg.MaxIterations, whichever comes first.
//
// Returns the baseline, the number of passes used, and whether the loop
// converged before the cap.
func airPLS(y []float64, cfg Config) (base []float64, iterations int, converged bool, err error) {
	n := len(y)

	// lambda * DᵀD is pentadiagonal and constant across passes; build its
	// three unique diagonals once by accumulating the (1, -2, 1) stencil
	// outer products.
	d0 := make([]float64, n) // main diagonal
	d1 := make([]float64, n) // first superdiagonal, d1[i] = A[i][i+1]
	d2 := make([]float64, n) // second superdiagonal

	for k := 0; k+2 < n; k++ {
		d0[k] += cfg.Lambda
		d0[k+1] += 4 * cfg.Lambda
		d0[k+2] += cfg.Lambda
		d1[k] += -2 * cfg.Lambda
		d1[k+1] += -2 * cfg.Lambda
		d2[k] += cfg.Lambda
	}

	absSum := 0.0
	for _, v := range y {
		absSum += math.Abs(v)
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	prev := make([]float64, n)
	wy := make([]float64, n)
	z := mat.NewVecDense(n, nil)

	sys := mat.NewSymBandDense(n, 2, nil)

	var ch mat.BandCholesky

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		iterations = iter

		for i := 0; i < n; i++ {
			sys.SetSymBand(i, i, w[i]+d0[i])
			if i+1 < n {
				sys.SetSymBand(i, i+1, d1[i])
			}
			if i+2 < n {
				sys.SetSymBand(i, i+2, d2[i])
			}
			wy[i] = w[i] * y[i]
		}

		if ok := ch.Factorize(sys); !ok {
			return nil, iterations, false, ErrSingular
		}

		err = ch.SolveVecTo(z, mat.NewVecDense(n, wy))
		if err != nil {
			return nil, iterations, false, ErrSingular
		}

		// Residuals below the estimate drive the reweighting.
		negSum := 0.0
		maxNeg := 0.0

		for i := 0; i < n; i++ {
			d := y[i] - z.AtVec(i)
			if d < 0 {
				negSum += -d
				if -d > maxNeg {
					maxNeg = -d
				}
			}
		}

		copy(prev, w)

		if negSum < 1e-12 || negSum < cfg.Tolerance*absSum {
			converged = true
			break
		}

		for i := 0; i < n; i++ {
			d := y[i] - z.AtVec(i)
			if d >= 0 {
				w[i] = 0
			} else {
				w[i] = math.Exp(float64(iter) * -d / negSum)
			}
		}

		// Endpoints stay anchored so the baseline cannot drift away from
		// the spectrum edges.
		w[0] = math.Exp(float64(iter) * maxNeg / negSum)
		w[n-1] = w[0]

		if weightDelta(w, prev) < cfg.Tolerance {
			converged = true
			break
		}
	}

	base = make([]float64, n)
	for i := range base {
		base[i] = z.AtVec(i)
	}

	return base, iterations, converged, nil
}

// weightDelta returns the relative L2 change between two weight vectors.
func weightDelta(w, prev []float64) float64 {
	var num, den float64

	for i := range w {
		d := w[i] - prev[i]
		num += d * d
		den += prev[i] * prev[i]
	}

	if den == 0 {
		return math.Sqrt(num)
	}

	return math.Sqrt(num / den)
}
