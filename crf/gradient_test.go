package crf_test

import (
	"testing"

	"github.com/katalvlaran/crfseq/crf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNLLGradients_LossMatchesNLL verifies the returned loss equals the
// standalone NLL computation.
func TestNLLGradients_LossMatchesNLL(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 3)
	e := testEmissions()
	gold := []int{0, 1, 2}

	loss, _, _, err := crf.NLLGradients(e, tr, gold)
	require.NoError(t, err)

	want, err := crf.NLL(e, tr, gold)
	require.NoError(t, err)
	assert.InDelta(t, want, loss, 1e-9)
}

// TestNLLGradients_MarginalsSumToOne verifies the unary marginals hidden
// inside dE: adding back the gold one-hot rows, every position's
// marginal distribution must sum to exactly one.
func TestNLLGradients_MarginalsSumToOne(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 9)
	e := testEmissions()
	gold := []int{2, 0, 1}

	_, dE, _, err := crf.NLLGradients(e, tr, gold)
	require.NoError(t, err)

	for pos, row := range dE {
		sum := 0.0
		for _, g := range row {
			sum += g
		}
		sum += 1 // undo the single -1 gold correction on this row
		assert.InDelta(t, 1.0, sum, 1e-9, "position %d", pos)
	}
}

// TestNLLGradients_EmissionFiniteDifference verifies dE against centered
// finite differences of the loss, entry by entry.
func TestNLLGradients_EmissionFiniteDifference(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 3)
	e := testEmissions()
	gold := []int{0, 1, 2}

	_, dE, _, err := crf.NLLGradients(e, tr, gold)
	require.NoError(t, err)

	const h = 1e-5
	for pos := range e {
		for k := range e[pos] {
			orig := e[pos][k]

			e[pos][k] = orig + h
			up, err := crf.NLL(e, tr, gold)
			require.NoError(t, err)

			e[pos][k] = orig - h
			down, err := crf.NLL(e, tr, gold)
			require.NoError(t, err)

			e[pos][k] = orig
			assert.InDelta(t, (up-down)/(2*h), dE[pos][k], 1e-4,
				"dE[%d][%d]", pos, k)
		}
	}
}

// TestNLLGradients_TransitionFiniteDifference verifies dW against
// centered finite differences on every learnable entry (the clamped
// sentinel lines carry no gradient and are skipped by Update anyway).
func TestNLLGradients_TransitionFiniteDifference(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 3)
	e := testEmissions()
	gold := []int{2, 1, 0}

	_, _, dW, err := crf.NLLGradients(e, tr, gold)
	require.NoError(t, err)

	const h = 1e-5
	for to := 0; to < tags.Size(); to++ {
		if to == tags.Start() {
			continue
		}
		for from := 0; from < tags.Size(); from++ {
			if from == tags.Stop() {
				continue
			}
			orig := tr.W[to][from]

			tr.W[to][from] = orig + h
			up, err := crf.NLL(e, tr, gold)
			require.NoError(t, err)

			tr.W[to][from] = orig - h
			down, err := crf.NLL(e, tr, gold)
			require.NoError(t, err)

			tr.W[to][from] = orig
			assert.InDelta(t, (up-down)/(2*h), dW[to][from], 1e-4,
				"dW[%d][%d]", to, from)
		}
	}
}

// TestNLLGradients_Validation verifies the input checks.
func TestNLLGradients_Validation(t *testing.T) {
	tags := newBIO(t)
	tr := crf.NewTransitions(tags, 3)

	_, _, _, err := crf.NLLGradients(nil, tr, nil)
	assert.ErrorIs(t, err, crf.ErrEmptyInput)

	_, _, _, err = crf.NLLGradients(testEmissions(), tr, []int{0})
	assert.ErrorIs(t, err, crf.ErrLengthMismatch)

	_, _, _, err = crf.NLLGradients(testEmissions(), tr, []int{0, 1, 9})
	assert.ErrorIs(t, err, crf.ErrTagOutOfRange)

	_, _, _, err = crf.NLLGradients(testEmissions(), nil, []int{0, 1, 2})
	assert.ErrorIs(t, err, crf.ErrNilTransitions)
}
