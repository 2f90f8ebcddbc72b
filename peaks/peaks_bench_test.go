package peaks

import (
	"strconv"
	"testing"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/internal/testutil"
)

func BenchmarkDetectAndFit(b *testing.B) {
	sizes := []int{550, 1100, 2200}

	for _, n := range sizes {
		x := testutil.Axis(100, 1, n)
		y := testutil.Trace(x, nil,
			[3]float64{100, 1008, 5},
			[3]float64{40, 439, 4},
			[3]float64{25, 357, 4})

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				if _, err := DetectAndFit(x, y, DefaultConfig()); err != nil {
					b.Fatalf("detect and fit: %v", err)
				}
			}
		})
	}
}

func BenchmarkNoiseEstimate(b *testing.B) {
	sizes := []int{1100, 4400}

	for _, n := range sizes {
		x := testutil.Axis(100, 1, n)
		y := testutil.Trace(x, nil, [3]float64{100, 1008, 5})

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				NoiseEstimate(y)
			}
		})
	}
}
