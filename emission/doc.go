// Package emission produces the per-position, per-tag score matrices the
// CRF layer consumes. The CRF core treats the producer as a black box:
// anything that maps an integer-encoded sequence of length L to an L×T
// score matrix, deterministically for fixed parameters, can drive it.
//
// 🚀 What lives here?
//
//	BiRNN — a compact trainable emission network:
//		• embedding table   V×D   (one learned vector per vocabulary entry)
//		• forward RNN       tanh, hidden size H, scans left→right
//		• backward RNN      tanh, hidden size H, scans right→left
//		• output projection 2H→T  (concatenated hidden states → tag scores)
//
// Each position's score row therefore sees context from both directions,
// which is what lets the CRF separate B/I/O decisions that depend on the
// surrounding characters.
//
// Training contract (consumed by package train):
//
//	Emit(seq)          → L×T emission matrix, caching activations
//	ZeroGrad()         → clear accumulated gradients (call before each example)
//	Backward(seq, dE)  → backpropagate the CRF's ∂loss/∂emissions through
//	                     time into every weight and the touched embeddings
//	Step(lr, decay)    → one in-place SGD + weight-decay step
//
// Weight fields are exported so a BiRNN serializes inside a gob model
// bundle; gradient and activation caches are unexported and rebuilt on
// demand after a load.
package emission
