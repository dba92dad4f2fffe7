package crf_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/crfseq/crf"
	"github.com/stretchr/testify/assert"
)

// naiveLSE is the textbook (unstable) computation used as a reference on
// inputs small enough not to overflow.
func naiveLSE(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x)
	}

	return math.Log(sum)
}

// TestLogSumExp_MatchesNaive verifies agreement with the direct
// computation on moderate inputs.
func TestLogSumExp_MatchesNaive(t *testing.T) {
	cases := [][]float64{
		{0},
		{1, 2, 3},
		{-1.5, 0.25, 2.75, -3},
		{5, 5, 5, 5},
	}
	for _, xs := range cases {
		assert.InDelta(t, naiveLSE(xs), crf.LogSumExp(xs), 1e-12, "input %v", xs)
	}
}

// TestLogSumExp_LargeMagnitudes verifies that inputs spanning ±1e4 —
// which overflow the naive computation — produce a finite, correct
// result: the maximum dominates and the smaller terms vanish.
func TestLogSumExp_LargeMagnitudes(t *testing.T) {
	got := crf.LogSumExp([]float64{1e4, -1e4, 0})
	assert.False(t, math.IsNaN(got), "must not be NaN")
	assert.False(t, math.IsInf(got, 0), "must not be infinite")
	assert.InDelta(t, 1e4, got, 1e-9, "the 1e4 term dominates")
}

// TestLogSumExp_Shifted verifies the shift identity
// LSE(x + c) == LSE(x) + c for a large constant c.
func TestLogSumExp_Shifted(t *testing.T) {
	xs := []float64{0.5, -1, 2}
	base := crf.LogSumExp(xs)

	const c = 5000.0
	shifted := make([]float64, len(xs))
	for i, x := range xs {
		shifted[i] = x + c
	}
	assert.InDelta(t, base+c, crf.LogSumExp(shifted), 1e-9)
}

// TestLogSumExp_AllNegInf verifies the log-of-zero-mass edge case:
// the result is -Inf, never NaN.
func TestLogSumExp_AllNegInf(t *testing.T) {
	inf := math.Inf(-1)
	got := crf.LogSumExp([]float64{inf, inf, inf})
	assert.True(t, math.IsInf(got, -1), "all -Inf must yield -Inf")
	assert.False(t, math.IsNaN(got), "must not be NaN")
}

// TestLogSumExp_Empty verifies that an empty sum is -Inf.
func TestLogSumExp_Empty(t *testing.T) {
	assert.True(t, math.IsInf(crf.LogSumExp(nil), -1))
}
