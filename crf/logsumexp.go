package crf

import "math"

// LogSumExp computes log(Σ exp(x)) over xs in a numerically stable way:
// the running maximum is subtracted before exponentiation, so no addend
// can overflow and the result is exact up to float rounding even when
// the inputs span magnitudes like ±1e4.
//
// Every log-domain summation in this package (forward algorithm,
// backward recurrence, marginals) goes through this one primitive.
//
// Edge cases:
//   - all inputs are -Inf (log of an empty mass): returns -Inf, not NaN.
//   - empty slice: returns -Inf (the log of a zero sum).
func LogSumExp(xs []float64) float64 {
	max := math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	// With max == -Inf every term is exp(-Inf - -Inf) = NaN; short-circuit.
	if math.IsInf(max, -1) {
		return max
	}

	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - max)
	}

	return max + math.Log(sum)
}
