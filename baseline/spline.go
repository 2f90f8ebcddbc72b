package baseline

import (
	"gonum.org/v1/gonum/interp"
)

// splineBaseline fits a natural cubic spline through anchor points picked
// from the masked background and evaluates it over the full axis.
//
// Anchors are spread evenly across the background points (peak regions are
// excluded by the same sigma-clipping mask the polynomial corrector uses),
// and the first and last background points are always anchored so the spline
// covers the whole axis without extrapolation artifacts at the edges.
func splineBaseline(x, y []float64, cfg Config) ([]float64, error) {
	include := exclusionMask(y, cfg)

	var idx []int

	for i := range x {
		if include[i] {
			idx = append(idx, i)
		}
	}

	if len(idx) < cfg.Anchors {
		return nil, errMaskEmpty
	}

	anchors := cfg.Anchors

	xs := make([]float64, 0, anchors)
	ys := make([]float64, 0, anchors)

	for k := 0; k < anchors; k++ {
		// Evenly spaced positions over the background points, endpoints
		// included.
		pos := idx[k*(len(idx)-1)/(anchors-1)]

		if len(xs) > 0 && x[pos] <= xs[len(xs)-1] {
			continue
		}

		xs = append(xs, x[pos])
		ys = append(ys, anchorValue(y, pos))
	}

	var nc interp.NaturalCubic

	err := nc.Fit(xs, ys)
	if err != nil {
		return nil, err
	}

	base := make([]float64, len(x))
	for i, v := range x {
		base[i] = nc.Predict(v)
	}

	return base, nil
}

// anchorValue returns a lightly smoothed intensity at pos: the mean of the
// three-point neighborhood, which keeps single-sample noise out of the
// spline knots.
func anchorValue(y []float64, pos int) float64 {
	sum := y[pos]
	count := 1.0

	if pos > 0 {
		sum += y[pos-1]
		count++
	}

	if pos+1 < len(y) {
		sum += y[pos+1]
		count++
	}

	return sum / count
}
