package peaks

import (
	"math"
	"sort"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/smooth"
)

// Detect returns the indices of candidate peaks in intensity, ascending.
//
// A candidate is a local maximum whose height exceeds
//
//	median(y) + HeightFactor * noise
//
// and whose prominence exceeds ProminenceFactor * noise, where noise is the
// robust estimate of [NoiseEstimate]. Candidates closer together than half
// the fit window collapse to the stronger one. When pre-smoothing is
// configured the thresholds and maxima are evaluated on the smoothed copy,
// but the returned indices always refer to the original sampling.
func Detect(intensity []float64, cfg Config) ([]int, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if len(intensity) < 5 {
		return nil, ErrShortInput
	}

	y := intensity

	if cfg.SmoothingWindow >= 3 {
		y, err = smooth.MovingAverage(y, cfg.SmoothingWindow|1)
		if err != nil {
			return nil, err
		}
	}

	if cfg.LowPassCutoff > 0 && cfg.LowPassCutoff < 1 {
		y, err = smooth.LowPass(y, cfg.LowPassCutoff)
		if err != nil {
			return nil, err
		}
	}

	noise := NoiseEstimate(y)

	// Floor the estimate at 0.1% of the signal range: on noise-free data
	// the MAD of the differences collapses to zero and smooth sub-permille
	// residuals from upstream stages would otherwise pass the thresholds.
	lo, hi := y[0], y[0]
	for _, v := range y {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if floor := 1e-3 * (hi - lo); noise < floor {
		noise = floor
	}

	heightMin := median(y) + cfg.HeightFactor*noise
	promMin := cfg.ProminenceFactor * noise

	var candidates []int

	for i := 1; i < len(y)-1; i++ {
		if y[i] <= y[i-1] || y[i] < y[i+1] {
			continue
		}

		if y[i] < heightMin {
			continue
		}

		if prominence(y, i) < promMin {
			continue
		}

		candidates = append(candidates, i)
	}

	candidates = mergeClose(y, candidates, cfg.FitHalfWidth/2)

	if cfg.MaxPeaks > 0 && len(candidates) > cfg.MaxPeaks {
		// Keep the strongest candidates, then restore axis order.
		sort.Slice(candidates, func(a, b int) bool {
			return y[candidates[a]] > y[candidates[b]]
		})
		candidates = candidates[:cfg.MaxPeaks]
		sort.Ints(candidates)
	}

	return candidates, nil
}

// NoiseEstimate returns a robust noise sigma for y: the median absolute
// deviation of the first differences, rescaled to standard-deviation units
// and corrected for the variance doubling of differencing:
//
//	noise = MAD(diff(y)) / 0.6745 / sqrt(2)
//
// Slow structure (baseline remnants, broad peaks) cancels in the
// differences, so the estimate tracks point-to-point noise only.
func NoiseEstimate(y []float64) float64 {
	if len(y) < 3 {
		return 0
	}

	diff := make([]float64, len(y)-1)
	for i := range diff {
		diff[i] = y[i+1] - y[i]
	}

	med := median(diff)

	dev := make([]float64, len(diff))
	for i, v := range diff {
		dev[i] = math.Abs(v - med)
	}

	return median(dev) / 0.6745 / math.Sqrt2
}

func median(y []float64) float64 {
	s := make([]float64, len(y))
	copy(s, y)
	sort.Float64s(s)

	n := len(s)
	if n == 0 {
		return 0
	}

	if n%2 == 1 {
		return s[n/2]
	}

	return 0.5 * (s[n/2-1] + s[n/2])
}

// prominence returns the height of y[i] above the higher of the two key
// valleys: on each side, walk until a point higher than y[i] (or the signal
// edge) and keep the minimum seen on the way.
func prominence(y []float64, i int) float64 {
	peak := y[i]

	leftMin := peak
	for j := i - 1; j >= 0; j-- {
		if y[j] > peak {
			break
		}

		if y[j] < leftMin {
			leftMin = y[j]
		}
	}

	rightMin := peak
	for j := i + 1; j < len(y); j++ {
		if y[j] > peak {
			break
		}

		if y[j] < rightMin {
			rightMin = y[j]
		}
	}

	return peak - math.Max(leftMin, rightMin)
}

// mergeClose collapses candidates within minDist points of each other onto
// the strongest of the group.
func mergeClose(y []float64, candidates []int, minDist int) []int {
	if minDist < 1 || len(candidates) < 2 {
		return candidates
	}

	out := candidates[:0]

	for _, c := range candidates {
		if len(out) > 0 && c-out[len(out)-1] < minDist {
			if y[c] > y[out[len(out)-1]] {
				out[len(out)-1] = c
			}

			continue
		}

		out = append(out, c)
	}

	return out
}
