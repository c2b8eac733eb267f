package enrichment

import "math"

// logBinomial returns log(C(n, k)), the natural log of the binomial
// coefficient, via math.Lgamma. Returns -Inf for an out-of-range k so
// callers can sum exp(...) terms without a separate bounds check.
func logBinomial(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	lgn, _ := math.Lgamma(float64(n + 1))
	lgk, _ := math.Lgamma(float64(k + 1))
	lgnk, _ := math.Lgamma(float64(n - k + 1))
	return lgn - lgk - lgnk
}

// hypergeomPMF is the probability of exactly x successes drawing N
// items without replacement from a population of size M containing n
// successes.
func hypergeomPMF(x, M, n, N int) float64 {
	num := logBinomial(n, x) + logBinomial(M-n, N-x)
	den := logBinomial(M, N)
	if math.IsInf(num, -1) {
		return 0
	}
	return math.Exp(num - den)
}

// hypergeomSF computes P(X >= k) for X ~ Hypergeometric(M, n, N): the
// probability of drawing at least k successes when N items are drawn
// without replacement from a population of size M containing n
// successes.
func hypergeomSF(k, M, n, N int) float64 {
	lo := 0
	if N-(M-n) > lo {
		lo = N - (M - n)
	}
	hi := n
	if N < hi {
		hi = N
	}
	if k > hi {
		return 0
	}
	if k < lo {
		k = lo
	}

	var sum float64
	for x := k; x <= hi; x++ {
		sum += hypergeomPMF(x, M, n, N)
	}
	if sum < 0 {
		sum = 0
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}
