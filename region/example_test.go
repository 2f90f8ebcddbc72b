package region_test

import (
	"fmt"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/region"
)

func ExampleTable_Classify() {
	t := region.DefaultTable()

	for _, center := range []float64{1008.3, 439.0, 700.0} {
		name, ok := t.Classify(center)
		fmt.Printf("%.1f -> %s (%v)\n", center, name, ok)
	}

	// Output:
	// 1008.3 -> nu3(SiO4) (true)
	// 439.0 -> nu2(SiO4) (true)
	// 700.0 -> Unassigned (false)
}
