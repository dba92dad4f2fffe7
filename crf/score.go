package crf

// PathScore returns the score of one specific tag path for the emission
// matrix e: the sum of chosen emission scores and consecutive transition
// scores, with the implicit START→path[0] prefix and path[L-1]→STOP
// suffix. This is a plain sum — no log-sum-exp is involved — and serves
// as the numerator of the training loss.
//
// The path must contain exactly one in-range tag index per position;
// nothing beyond index bounds is validated (any in-range sequence is a
// legal event under the model, however improbable).
func PathScore(e [][]float64, tr *Transitions, path []int) (float64, error) {
	if tr == nil {
		return 0, ErrNilTransitions
	}
	size := tr.Tags.Size()
	if err := checkEmissions(e, size); err != nil {
		return 0, err
	}
	if err := checkPath(path, len(e), size); err != nil {
		return 0, err
	}

	var score float64
	prev := tr.Tags.Start()
	for t, tag := range path {
		score += tr.W[tag][prev] + e[t][tag]
		prev = tag
	}
	score += tr.W[tr.Tags.Stop()][prev]

	return score, nil
}

// NLL returns the negative log-likelihood of the gold path:
//
//	NLL = Forward(e) − PathScore(e, gold)
//
// In a normalized model the gold path is one term inside the partition
// sum, so NLL ≥ 0 up to float tolerance; while emissions are still being
// learned the value may transiently dip below zero.
func NLL(e [][]float64, tr *Transitions, gold []int) (float64, error) {
	logZ, err := Forward(e, tr)
	if err != nil {
		return 0, err
	}
	goldScore, err := PathScore(e, tr, gold)
	if err != nil {
		return 0, err
	}

	return logZ - goldScore, nil
}
