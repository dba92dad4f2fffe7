package crf

import "math"

// NLLGradients computes the negative log-likelihood of the gold path and
// its exact gradients with respect to the emission matrix and the
// transition matrix, using the forward–backward algorithm.
//
// With α and β the forward/backward log-messages and logZ the partition
// function, the model marginals are
//
//	P(y_t = k)            = exp(α[t][k] + β[t][k] − logZ)
//	P(y_t = j, y_t+1 = k) = exp(α[t][j] + W[k][j] + e[t+1][k] + β[t+1][k] − logZ)
//
// and the gradients are expected counts minus gold counts:
//
//	dE[t][k]   = P(y_t = k)            − 1{gold[t] = k}
//	dW[k][j]   = Σ_t P(y_t=j, y_t+1=k) − #{gold transitions j→k}
//
// including the START→first boundary column and the last→STOP boundary
// row. The row into START and the column out of STOP receive no gradient;
// Transitions.Update skips them anyway.
//
// Complexity: O(L·T²) time, O(L·T) memory for the α/β tables.
func NLLGradients(e [][]float64, tr *Transitions, gold []int) (loss float64, dE, dW [][]float64, err error) {
	if tr == nil {
		return 0, nil, nil, ErrNilTransitions
	}
	size := tr.Tags.Size()
	if err = checkEmissions(e, size); err != nil {
		return 0, nil, nil, err
	}
	length := len(e)
	if err = checkPath(gold, length, size); err != nil {
		return 0, nil, nil, err
	}
	start, stop := tr.Tags.Start(), tr.Tags.Stop()

	// 1) Forward messages α[t][k]: log-mass of all prefixes ending in k at t.
	alpha := make([][]float64, length)
	cand := make([]float64, size)
	for t := range alpha {
		alpha[t] = make([]float64, size)
		for k := 0; k < size; k++ {
			if t == 0 {
				alpha[0][k] = tr.W[k][start] + e[0][k]
				continue
			}
			for j := 0; j < size; j++ {
				cand[j] = alpha[t-1][j] + tr.W[k][j]
			}
			alpha[t][k] = LogSumExp(cand) + e[t][k]
		}
	}

	// 2) Partition function from the last forward message.
	for k := 0; k < size; k++ {
		cand[k] = alpha[length-1][k] + tr.W[stop][k]
	}
	logZ := LogSumExp(cand)

	// 3) Backward messages β[t][j]: log-mass of all suffixes leaving j at t.
	beta := make([][]float64, length)
	for t := length - 1; t >= 0; t-- {
		beta[t] = make([]float64, size)
		for j := 0; j < size; j++ {
			if t == length-1 {
				beta[t][j] = tr.W[stop][j]
				continue
			}
			for k := 0; k < size; k++ {
				cand[k] = tr.W[k][j] + e[t+1][k] + beta[t+1][k]
			}
			beta[t][j] = LogSumExp(cand)
		}
	}

	// 4) Emission gradient: unary marginals minus the gold one-hot rows.
	dE = make([][]float64, length)
	for t := range dE {
		dE[t] = make([]float64, size)
		for k := 0; k < size; k++ {
			dE[t][k] = math.Exp(alpha[t][k] + beta[t][k] - logZ)
		}
		dE[t][gold[t]] -= 1
	}

	// 5) Transition gradient: pairwise marginals minus gold counts.
	dW = make([][]float64, size)
	for to := range dW {
		dW[to] = make([]float64, size)
	}
	//    5a) START boundary: position 0 pairs with START deterministically.
	for k := 0; k < size; k++ {
		dW[k][start] += math.Exp(alpha[0][k] + beta[0][k] - logZ)
	}
	dW[gold[0]][start] -= 1
	//    5b) Interior pairs.
	for t := 0; t < length-1; t++ {
		for j := 0; j < size; j++ {
			for k := 0; k < size; k++ {
				dW[k][j] += math.Exp(alpha[t][j] + tr.W[k][j] + e[t+1][k] + beta[t+1][k] - logZ)
			}
		}
		dW[gold[t+1]][gold[t]] -= 1
	}
	//    5c) STOP boundary: the last position pairs with STOP deterministically.
	for k := 0; k < size; k++ {
		dW[stop][k] += math.Exp(alpha[length-1][k] + beta[length-1][k] - logZ)
	}
	dW[stop][gold[length-1]] -= 1

	// 6) Loss for the caller: logZ minus the plain gold-path sum.
	goldScore, err := PathScore(e, tr, gold)
	if err != nil {
		return 0, nil, nil, err
	}

	return logZ - goldScore, dE, dW, nil
}
