package crf

import "fmt"

// Decode runs Viterbi decoding: it returns the single highest-scoring
// tag path for the emission matrix e, together with its score. The
// returned path covers real positions only — sentinels never appear.
//
// The recurrence mirrors Forward with max in place of LogSumExp, and a
// backpointer recorded per (position, tag). After the last position the
// STOP transition is folded in and the best final tag is selected; the
// path is then reconstructed tail-first by following backpointers and
// reversed in place before returning.
//
// Tie-breaking: comparisons use strictly-greater, so among equal-scoring
// previous tags the lowest index (first seen) wins. The choice is stable:
// identical inputs always decode to the identical path.
//
// The reconstructed chain must resolve to START one step before position
// 0. A mismatch means the backpointer bookkeeping is broken — an internal
// logic defect, not a runtime condition — so Decode panics rather than
// returning a silently corrupted path.
//
// Complexity:
//
//   - Time:   O(L·T²)
//   - Memory: O(L·T) for the backpointer table
func Decode(e [][]float64, tr *Transitions) (float64, []int, error) {
	if tr == nil {
		return 0, nil, ErrNilTransitions
	}
	size := tr.Tags.Size()
	if err := checkEmissions(e, size); err != nil {
		return 0, nil, err
	}

	// 1) Initial vector: all mass on START, as in Forward.
	prev := make([]float64, size)
	for k := range prev {
		prev[k] = MinScore
	}
	prev[tr.Tags.Start()] = 0

	// 2) DP sweep with backpointers.
	next := make([]float64, size)
	back := make([][]int, len(e))
	for t := range e {
		back[t] = make([]int, size)
		for k := 0; k < size; k++ {
			bestJ := 0
			best := prev[0] + tr.W[k][0]
			for j := 1; j < size; j++ {
				if s := prev[j] + tr.W[k][j]; s > best {
					best, bestJ = s, j
				}
			}
			next[k] = best + e[t][k]
			back[t][k] = bestJ
		}
		prev, next = next, prev
	}

	// 3) Terminal step: add the STOP transition, pick the best final tag.
	bestTag := 0
	bestScore := prev[0] + tr.W[tr.Tags.Stop()][0]
	for k := 1; k < size; k++ {
		if s := prev[k] + tr.W[tr.Tags.Stop()][k]; s > bestScore {
			bestScore, bestTag = s, k
		}
	}

	// 4) Reconstruct tail-first, following backpointers to position -1.
	path := make([]int, 0, len(e)+1)
	path = append(path, bestTag)
	for t := len(e) - 1; t >= 0; t-- {
		bestTag = back[t][bestTag]
		path = append(path, bestTag)
	}

	// 5) The chain must bottom out at START; anything else is a defect.
	if path[len(path)-1] != tr.Tags.Start() {
		panic(fmt.Sprintf("crf: viterbi backtrace ended at tag %d, want START (%d)",
			path[len(path)-1], tr.Tags.Start()))
	}
	path = path[:len(path)-1]

	// 6) Reverse in place: the path was built tail-first.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return bestScore, path, nil
}
