package enrichment

import "sort"

// Method selects the FDR correction procedure.
type Method string

const (
	BenjaminiHochberg  Method = "benjamini-hochberg"
	BenjaminiYekutieli Method = "benjamini-yekutieli"
)

// AdjustPValues applies the chosen FDR correction to a slice of raw
// p-values and returns the adjusted values in the same order as the
// input; adjusted values are monotone non-decreasing in sorted
// p-value order.
func AdjustPValues(pValues []float64, method Method) []float64 {
	m := len(pValues)
	adjusted := make([]float64, m)
	if m == 0 {
		return adjusted
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return pValues[order[i]] < pValues[order[j]] })

	var correction float64
	if method == BenjaminiYekutieli {
		for i := 1; i <= m; i++ {
			correction += 1.0 / float64(i)
		}
	}

	ranked := make([]float64, m)
	for rank, idx := range order {
		i := rank + 1
		switch method {
		case BenjaminiYekutieli:
			ranked[rank] = pValues[idx] * float64(m) * correction / float64(i)
		default: // BenjaminiHochberg
			ranked[rank] = pValues[idx] * float64(m) / float64(i)
		}
	}

	// Enforce monotonicity by taking the running minimum from the
	// largest rank down to the smallest (standard BH/BY step-up).
	minSoFar := ranked[m-1]
	if minSoFar > 1 {
		minSoFar = 1
	}
	ranked[m-1] = minSoFar
	for rank := m - 2; rank >= 0; rank-- {
		if ranked[rank] > minSoFar {
			ranked[rank] = minSoFar
		}
		if ranked[rank] > 1 {
			ranked[rank] = 1
		}
		minSoFar = ranked[rank]
	}

	for rank, idx := range order {
		adjusted[idx] = ranked[rank]
	}
	return adjusted
}
