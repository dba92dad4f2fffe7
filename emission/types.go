// Package emission defines the configuration and sentinel errors of the
// emission network.
package emission

import "errors"

// Sentinel errors returned by the emission network.
var (
	// ErrBadConfig indicates a non-positive dimension in the Config.
	ErrBadConfig = errors.New("emission: config dimensions must be positive")

	// ErrEmptySequence indicates an empty input sequence.
	ErrEmptySequence = errors.New("emission: input sequence must be non-empty")

	// ErrTokenOutOfRange indicates an input token outside [0, VocabSize).
	ErrTokenOutOfRange = errors.New("emission: token index out of range")

	// ErrNoForward indicates Backward was called without a matching,
	// immediately preceding Emit for the same sequence.
	ErrNoForward = errors.New("emission: no cached forward pass for this sequence")

	// ErrGradShape indicates that the emission gradient passed to
	// Backward does not match the cached forward pass.
	ErrGradShape = errors.New("emission: gradient shape does not match forward pass")
)

// Config fixes the dimensions of a BiRNN emission network.
//
//	VocabSize — number of distinct input tokens V
//	EmbedDim  — embedding width D
//	HiddenDim — hidden size H of each directional RNN
//	TagCount  — output width T (tag-set size, sentinels included)
//	Seed      — source for the reproducible weight initialization
type Config struct {
	VocabSize int
	EmbedDim  int
	HiddenDim int
	TagCount  int
	Seed      uint64
}

// validate reports whether every dimension is positive.
func (c Config) validate() error {
	if c.VocabSize <= 0 || c.EmbedDim <= 0 || c.HiddenDim <= 0 || c.TagCount <= 0 {
		return ErrBadConfig
	}

	return nil
}
