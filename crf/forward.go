package crf

// Forward runs the forward algorithm and returns the log partition
// function: the log-summed score mass over every possible tag path for
// the given emission matrix e (one row per position, one column per tag,
// sentinels included).
//
// Recurrence (all in log-space, via LogSumExp):
//
//	v[k]  ← MinScore for all k;  v[START] ← 0
//	v'[k] ← LogSumExp_j( v[j] + W[k][j] ) + e[t][k]   for t = 0..L-1
//	logZ  ← LogSumExp_k( v[k] + W[STOP][k] )
//
// Only two length-T vectors are kept; no per-position history is needed.
//
// Complexity:
//
//   - Time:   O(L·T²)
//   - Memory: O(T)
func Forward(e [][]float64, tr *Transitions) (float64, error) {
	if tr == nil {
		return 0, ErrNilTransitions
	}
	size := tr.Tags.Size()
	if err := checkEmissions(e, size); err != nil {
		return 0, err
	}

	// 1) Initial vector: all mass on START.
	prev := make([]float64, size)
	for k := range prev {
		prev[k] = MinScore
	}
	prev[tr.Tags.Start()] = 0

	// 2) Scratch buffers reused across positions.
	next := make([]float64, size)
	cand := make([]float64, size)

	// 3) Sweep the sequence left to right.
	for t := range e {
		for k := 0; k < size; k++ {
			for j := 0; j < size; j++ {
				cand[j] = prev[j] + tr.W[k][j]
			}
			next[k] = LogSumExp(cand) + e[t][k]
		}
		prev, next = next, prev
	}

	// 4) Fold in the STOP transition and collapse to a scalar.
	for j := 0; j < size; j++ {
		cand[j] = prev[j] + tr.W[tr.Tags.Stop()][j]
	}

	return LogSumExp(cand), nil
}
