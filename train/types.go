// Package train defines the training configuration, the emission-network
// contract it consumes, and the sentinel errors of the orchestrator.
package train

import "errors"

// Sentinel errors returned by the training orchestrator.
var (
	// ErrEmptyCorpus indicates that training was requested with no examples.
	ErrEmptyCorpus = errors.New("train: corpus must be non-empty")

	// ErrModelNotFound indicates that no persisted model exists at the
	// given path. Callers treat it as "go train", unlike any other load
	// failure, which propagates.
	ErrModelNotFound = errors.New("train: model file not found")

	// ErrBadEpochs indicates a non-positive epoch count.
	ErrBadEpochs = errors.New("train: epoch count must be positive")

	// ErrBadLearnRate indicates a non-positive learning rate.
	ErrBadLearnRate = errors.New("train: learning rate must be positive")

	// ErrBadWeightDecay indicates a negative weight decay.
	ErrBadWeightDecay = errors.New("train: weight decay must be non-negative")

	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("train: worker count must be positive")
)

// Network is the emission-model contract the trainer consumes. The CRF
// core never sees it; anything that emits deterministic L×T score
// matrices and supports gradient-style updates can be trained.
type Network interface {
	// Emit maps an integer-encoded sequence to its L×T emission matrix.
	Emit(seq []int) ([][]float64, error)
	// ZeroGrad clears accumulated gradients; called before each example.
	ZeroGrad()
	// Backward accumulates ∂loss/∂emissions into the parameters' gradients.
	Backward(seq []int, dE [][]float64) error
	// Step applies one in-place SGD + weight-decay update.
	Step(lr, decay float64)
}

// Config holds the training hyperparameters.
//
//	Epochs      – full passes over each worker's shard
//	LearnRate   – SGD step size
//	WeightDecay – L2 decay coefficient folded into each step
//	Workers     – number of concurrent shard workers
type Config struct {
	Epochs      int
	LearnRate   float64
	WeightDecay float64
	Workers     int
}

// Option is a functional option for configuring training.
type Option func(*Config)

// WithEpochs sets the number of passes over each shard.
// Must be positive; invalid values panic (misconfiguration is a defect).
func WithEpochs(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			panic(ErrBadEpochs.Error())
		}
		c.Epochs = n
	}
}

// WithLearnRate sets the SGD step size. Must be positive.
func WithLearnRate(lr float64) Option {
	return func(c *Config) {
		if lr <= 0 {
			panic(ErrBadLearnRate.Error())
		}
		c.LearnRate = lr
	}
}

// WithWeightDecay sets the L2 decay coefficient. Must be non-negative.
func WithWeightDecay(d float64) Option {
	return func(c *Config) {
		if d < 0 {
			panic(ErrBadWeightDecay.Error())
		}
		c.WeightDecay = d
	}
}

// WithWorkers sets the number of concurrent shard workers. Must be positive.
func WithWorkers(p int) Option {
	return func(c *Config) {
		if p <= 0 {
			panic(ErrBadWorkers.Error())
		}
		c.Workers = p
	}
}

// DefaultConfig returns the hyperparameters the model ships with:
// 15 epochs, learning rate 0.01, weight decay 1e-4, 4 workers.
func DefaultConfig() Config {
	return Config{
		Epochs:      15,
		LearnRate:   0.01,
		WeightDecay: 1e-4,
		Workers:     4,
	}
}
