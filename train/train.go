package train

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/crfseq/corpus"
	"github.com/katalvlaran/crfseq/crf"
)

// Train optimizes the shared model in place: the corpus is split into
// balanced contiguous shards, one goroutine per shard, every worker
// running the full SGD loop against the same parameter objects. Each
// worker trains through its own view of the emission network
// (BiRNN.Worker), so the per-example activation and gradient scratch
// state is private while the weights stay shared.
//
// Parameter updates are applied without per-step locking — a deliberate
// lock-free scheme (see the package documentation): interleaved or lost
// float writes only perturb convergence, never model invariants, because
// the optimization target is statistical rather than transactional. The
// call blocks until every worker has finished; the first worker error
// (e.g. a malformed corpus entry) fails the entire run, with no partial
// acceptance of the shards that succeeded.
func Train(m *Model, examples []corpus.Example, opts ...Option) error {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(examples) == 0 {
		return ErrEmptyCorpus
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, bounds := range Shards(len(examples), cfg.Workers) {
		shard := examples[bounds[0]:bounds[1]]
		if len(shard) == 0 {
			continue // more workers than examples
		}
		wg.Add(1)
		go func(shard []corpus.Example) {
			defer wg.Done()
			if err := trainShard(m.Net.Worker(), m.Trans, shard, cfg); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(shard)
	}
	wg.Wait()

	return firstErr
}

// trainShard runs the sequential SGD loop over one shard: for each
// example, clear gradient state, emit, compute CRF loss gradients,
// backpropagate, and step both parameter sets.
func trainShard(net Network, tr *crf.Transitions, shard []corpus.Example, cfg Config) error {
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for i, ex := range shard {
			// Gradients accumulate within one example only; clear
			// whatever the previous example left behind.
			net.ZeroGrad()

			e, err := net.Emit(ex.Input)
			if err != nil {
				return fmt.Errorf("train: example %d: %w", i, err)
			}
			_, dE, dW, err := crf.NLLGradients(e, tr, ex.Labels)
			if err != nil {
				return fmt.Errorf("train: example %d: %w", i, err)
			}
			if err := net.Backward(ex.Input, dE); err != nil {
				return fmt.Errorf("train: example %d: %w", i, err)
			}
			if err := tr.Update(dW, cfg.LearnRate, cfg.WeightDecay); err != nil {
				return fmt.Errorf("train: example %d: %w", i, err)
			}
			net.Step(cfg.LearnRate, cfg.WeightDecay)
		}
	}

	return nil
}
