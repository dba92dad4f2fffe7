// Package train orchestrates CRF model training: it shards a labeled
// corpus across workers, runs stochastic gradient descent with weight
// decay against one shared parameter set, and persists the result as a
// single opaque gob bundle.
//
// 🚀 How training works:
//
//	For every example, in order, each worker:
//	  1. clears the emission network's accumulated gradients
//	  2. emits the L×T score matrix for the input sequence
//	  3. computes the CRF negative log-likelihood and its exact gradients
//	  4. backpropagates ∂loss/∂emissions through the network
//	  5. applies one SGD + weight-decay step to transitions and network
//
// ✨ Parallelism — a deliberate design choice:
//
//	The corpus is cut into near-equal contiguous shards (sizes differ by
//	at most one, larger shards first) and one goroutine trains each shard
//	against the *same* Model with no per-update locking. Every goroutine
//	works through its own view of the emission network (BiRNN.Worker):
//	the weights are shared, the per-example activation caches and
//	gradient accumulators are not. Concurrent parameter
//	updates interleave at arbitrary element granularity — the classic
//	lock-free "parameter averaging" scheme: a lost or torn update only
//	perturbs convergence speed, never the structural invariants of the
//	model (the transition sentinel lines are never written at all).
//	Workers must not assume snapshot consistency of the parameters they
//	read. The orchestrator joins all workers before the model is
//	considered trained; any worker error fails the whole run, since a
//	partially trained shared parameter set has no recovery state.
//
// ⚙️ Usage:
//
//	tags, _ := crf.NewTagSet([]string{"B", "I", "O"})
//	model, err := train.LoadOrTrain("model.gob", tags,
//	    emission.Config{VocabSize: v, EmbedDim: 5, HiddenDim: 4},
//	    examples,
//	    train.WithEpochs(15), train.WithWorkers(4))
//
// LoadOrTrain treats a missing model file as "go train" and any other
// load failure (e.g. a corrupt bundle) as a hard error.
package train
