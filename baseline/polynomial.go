package baseline

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var errMaskEmpty = errors.New("baseline: exclusion mask rejected every point")

// exclusionMask marks points that belong to the slowly varying background.
// Peaks are excluded by iterative sigma clipping: any point more than
// cfg.MaskFactor standard deviations above the mean of the currently
// included points is dropped, and the statistics are recomputed.
func exclusionMask(y []float64, cfg Config) []bool {
	include := make([]bool, len(y))
	for i := range include {
		include[i] = true
	}

	passes := cfg.MaskIterations
	if passes < 1 {
		passes = 1
	}

	buf := make([]float64, 0, len(y))

	for pass := 0; pass < passes; pass++ {
		buf = buf[:0]
		for i, v := range y {
			if include[i] {
				buf = append(buf, v)
			}
		}

		if len(buf) < 2 {
			break
		}

		mean := stat.Mean(buf, nil)
		std := stat.StdDev(buf, nil)

		if std == 0 {
			break
		}

		threshold := mean + cfg.MaskFactor*std
		changed := false

		for i, v := range y {
			if include[i] && v > threshold {
				include[i] = false
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return include
}

// polynomialBaseline fits a degree-cfg.Degree polynomial to the masked
// background points by QR least squares and evaluates it over the full axis.
//
// The abscissa is rescaled to [-1, 1] before building the Vandermonde matrix
// so that high degrees stay well conditioned.
func polynomialBaseline(x, y []float64, cfg Config) ([]float64, error) {
	include := exclusionMask(y, cfg)

	var xs, ys []float64

	for i := range x {
		if include[i] {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}

	if len(xs) <= cfg.Degree {
		return nil, errMaskEmpty
	}

	lo, hi := x[0], x[len(x)-1]
	scale := func(v float64) float64 {
		return 2*(v-lo)/(hi-lo) - 1
	}

	cols := cfg.Degree + 1
	a := mat.NewDense(len(xs), cols, nil)

	for i, v := range xs {
		t := scale(v)
		p := 1.0

		for j := 0; j < cols; j++ {
			a.Set(i, j, p)
			p *= t
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.Dense

	err := qr.SolveTo(&coef, false, mat.NewDense(len(ys), 1, ys))
	if err != nil {
		return nil, err
	}

	base := make([]float64, len(x))
	for i, v := range x {
		t := scale(v)

		// Horner evaluation, highest degree first.
		acc := coef.At(cols-1, 0)
		for j := cols - 2; j >= 0; j-- {
			acc = acc*t + coef.At(j, 0)
		}

		base[i] = acc
	}

	return base, nil
}
