// Package crf implements the linear-chain Conditional Random Field core:
// the log-space dynamic programs that score, normalize and decode tag
// sequences over externally produced emission scores.
//
// 🚀 What is a linear-chain CRF?
//
//	A model that scores an entire tag sequence jointly as
//
//	    score(y) = Σ_t  E[t][y_t] + W[y_t][y_{t-1}]
//
//	where E is a per-position emission matrix (produced outside this
//	package) and W is a learned tag-transition matrix anchored by two
//	sentinel tags, START and STOP, that never label a real position.
//
// ✨ What the package provides:
//   - TagSet      — fixed tag inventory with the two sentinels appended
//   - Transitions — T×T transition matrix with the structural invariant
//     "never into START, never out of STOP" baked in at construction
//   - LogSumExp   — the one numerically safe log-domain summation primitive
//   - Forward     — log partition function over all tag paths, O(L·T²)
//   - PathScore   — score of one known (gold) tag path
//   - NLL         — negative log-likelihood training loss
//   - NLLGradients— exact loss gradients via forward–backward marginals
//   - Decode      — Viterbi maximum-a-posteriori path with backpointers
//
// ⚙️ Usage:
//
//	tags, _ := crf.NewTagSet([]string{"B", "I", "O"})
//	tr := crf.NewTransitions(tags, 1)
//
//	logZ, _ := crf.Forward(emissions, tr)       // partition function
//	gold, _ := crf.PathScore(emissions, tr, y)  // numerator
//	loss := logZ - gold                         // == crf.NLL(...)
//
//	score, path, _ := crf.Decode(emissions, tr) // best tag sequence
//
// Complexity:
//
//   - Time:   O(L·T²) for Forward, NLLGradients and Decode
//   - Memory: O(T) for Forward; O(L·T) where backtrace/marginals are needed
//
// All inputs are validated against the tag-set size; malformed emissions
// or tag indices surface as sentinel errors, never as silent corruption.
package crf
