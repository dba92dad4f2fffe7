package crf_test

import (
	"testing"

	"github.com/katalvlaran/crfseq/crf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBIO returns the {B, I, O} tag set used throughout these tests.
func newBIO(t *testing.T) crf.TagSet {
	t.Helper()
	tags, err := crf.NewTagSet([]string{"B", "I", "O"})
	require.NoError(t, err)

	return tags
}

// TestNewTagSet_Layout verifies index layout: real tags first, sentinels
// as the last two indices.
func TestNewTagSet_Layout(t *testing.T) {
	tags := newBIO(t)

	assert.Equal(t, 5, tags.Size(), "3 real tags + 2 sentinels")
	assert.Equal(t, 3, tags.Start())
	assert.Equal(t, 4, tags.Stop())
	assert.Equal(t, 0, tags.Index["B"])
	assert.Equal(t, 2, tags.Index["O"])

	name, err := tags.Name(tags.Start())
	require.NoError(t, err)
	assert.Equal(t, crf.StartTag, name)

	_, err = tags.Name(99)
	assert.ErrorIs(t, err, crf.ErrTagOutOfRange)
}

// TestNewTagSet_Rejections verifies empty, duplicate, and reserved names.
func TestNewTagSet_Rejections(t *testing.T) {
	_, err := crf.NewTagSet(nil)
	assert.ErrorIs(t, err, crf.ErrEmptyTagSet)

	_, err = crf.NewTagSet([]string{"B", "B"})
	assert.ErrorIs(t, err, crf.ErrDuplicateTag, "duplicate real tag")

	_, err = crf.NewTagSet([]string{"B", crf.StartTag})
	assert.ErrorIs(t, err, crf.ErrDuplicateTag, "reserved sentinel name")
}

// TestNewTransitions_SentinelInvariant verifies the structural clamp:
// no transition into START, none out of STOP.
func TestNewTransitions_SentinelInvariant(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 1)

	for from := 0; from < tags.Size(); from++ {
		assert.Equal(t, crf.MinScore, tr.Score(tags.Start(), from),
			"into START from %d must be clamped", from)
	}
	for to := 0; to < tags.Size(); to++ {
		assert.Equal(t, crf.MinScore, tr.Score(to, tags.Stop()),
			"out of STOP to %d must be clamped", to)
	}
}

// TestNewTransitions_Deterministic verifies that the same seed yields
// the same matrix and a different seed does not.
func TestNewTransitions_Deterministic(t *testing.T) {
	tags := newBIO(t)

	a := crf.NewTransitions(tags, 7)
	b := crf.NewTransitions(tags, 7)
	c := crf.NewTransitions(tags, 8)

	assert.Equal(t, a.W, b.W, "same seed, same matrix")
	assert.NotEqual(t, a.W, c.W, "different seed, different matrix")
}

// TestTransitions_UpdatePreservesInvariant verifies that many SGD steps
// with weight decay never disturb the sentinel lines: Update skips them
// by construction, so decay cannot drag MinScore toward zero.
func TestTransitions_UpdatePreservesInvariant(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 1)

	grad := make([][]float64, tags.Size())
	for i := range grad {
		grad[i] = make([]float64, tags.Size())
		for j := range grad[i] {
			grad[i][j] = 1.5 // uniform pressure on every entry
		}
	}
	for step := 0; step < 250; step++ {
		require.NoError(t, tr.Update(grad, 0.1, 0.01))
	}

	for from := 0; from < tags.Size(); from++ {
		assert.Equal(t, crf.MinScore, tr.Score(tags.Start(), from))
	}
	for to := 0; to < tags.Size(); to++ {
		assert.Equal(t, crf.MinScore, tr.Score(to, tags.Stop()))
	}
	// A learnable entry must have moved under the same pressure.
	assert.NotEqual(t, crf.MinScore, tr.Score(0, 1))
}

// TestTransitions_UpdateStep verifies one SGD + weight-decay step on a
// learnable entry: w ← w − lr·(g + decay·w).
func TestTransitions_UpdateStep(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 1)
	tr.W[0][1] = 2.0

	grad := make([][]float64, tags.Size())
	for i := range grad {
		grad[i] = make([]float64, tags.Size())
	}
	grad[0][1] = 0.5

	require.NoError(t, tr.Update(grad, 0.1, 0.01))
	assert.InDelta(t, 2.0-0.1*(0.5+0.01*2.0), tr.Score(0, 1), 1e-12)
}

// TestTransitions_UpdateDimensionMismatch verifies gradient shape checks.
func TestTransitions_UpdateDimensionMismatch(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 1)

	err := tr.Update(make([][]float64, 2), 0.1, 0)
	assert.ErrorIs(t, err, crf.ErrDimensionMismatch, "wrong row count")

	ragged := make([][]float64, tags.Size())
	for i := range ragged {
		ragged[i] = make([]float64, tags.Size())
	}
	ragged[2] = make([]float64, 1)
	err = tr.Update(ragged, 0.1, 0)
	assert.ErrorIs(t, err, crf.ErrDimensionMismatch, "ragged row")
}
