package crf

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Transitions is the T×T learnable transition matrix of the CRF.
// W[to][from] is the additive log-score of moving from tag `from` to tag
// `to` (note the to-first orientation; it matches the recurrences, which
// scan candidate previous tags for a fixed next tag).
//
// Structural invariant, enforced at construction and preserved by Update:
//
//	W[Start()][*] == MinScore   (nothing transitions into START)
//	W[*][Stop()]  == MinScore   (nothing transitions out of STOP)
//
// Fields are exported so the matrix serializes inside a gob model bundle.
type Transitions struct {
	Tags TagSet
	W    [][]float64 // W[to][from]
}

// NewTransitions allocates a transition matrix for the given tag set,
// fills it with small seeded Gaussian values, and clamps the two sentinel
// lines to MinScore. The same seed always yields the same matrix.
func NewTransitions(tags TagSet, seed uint64) *Transitions {
	size := tags.Size()
	rng := rand.New(rand.NewSource(seed))

	w := make([][]float64, size)
	for to := range w {
		w[to] = make([]float64, size)
		for from := range w[to] {
			w[to][from] = rng.NormFloat64() * 0.01
		}
	}
	for from := 0; from < size; from++ {
		w[tags.Start()][from] = MinScore // never into START
	}
	for to := 0; to < size; to++ {
		w[to][tags.Stop()] = MinScore // never out of STOP
	}

	return &Transitions{Tags: tags, W: w}
}

// Score returns the transition score from tag `from` to tag `to`.
func (tr *Transitions) Score(to, from int) float64 { return tr.W[to][from] }

// Update applies one SGD step with weight decay, in place:
//
//	W[to][from] -= lr * (grad[to][from] + decay*W[to][from])
//
// The sentinel lines (the row into START and the column out of STOP) are
// skipped entirely, so the structural invariant holds by construction
// after any number of steps; in particular weight decay never erodes the
// MinScore clamp toward zero.
//
// Update is deliberately not synchronized: concurrent callers interleave
// at element granularity, which the training design accepts (see package
// train).
func (tr *Transitions) Update(grad [][]float64, lr, decay float64) error {
	size := tr.Tags.Size()
	if len(grad) != size {
		return fmt.Errorf("%w: gradient has %d rows, want %d",
			ErrDimensionMismatch, len(grad), size)
	}
	for to, row := range grad {
		if len(row) != size {
			return fmt.Errorf("%w: gradient row %d has width %d, want %d",
				ErrDimensionMismatch, to, len(row), size)
		}
		if to == tr.Tags.Start() {
			continue
		}
		for from, g := range row {
			if from == tr.Tags.Stop() {
				continue
			}
			tr.W[to][from] -= lr * (g + decay*tr.W[to][from])
		}
	}

	return nil
}
