package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocab maps characters to contiguous integer indices. A vocabulary
// loaded from disk keeps its persisted indices; characters met for the
// first time during Encode are appended after them, mirroring the usual
// "grow on out-of-vocabulary word" loading behavior.
//
// Growth mutates the map and is not safe for concurrent use; finish
// encoding before handing sequences to parallel training.
type Vocab struct {
	Index map[string]int
}

// NewVocab returns an empty vocabulary.
func NewVocab() *Vocab {
	return &Vocab{Index: make(map[string]int)}
}

// LoadVocab reads a JSON object mapping characters to indices.
func LoadVocab(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading vocabulary %s: %w", path, err)
	}

	v := NewVocab()
	if err := json.Unmarshal(data, &v.Index); err != nil {
		return nil, fmt.Errorf("corpus: parsing vocabulary %s: %w", path, err)
	}

	return v, nil
}

// Size returns the number of known characters.
func (v *Vocab) Size() int { return len(v.Index) }

// Encode maps tokens to their indices, assigning the next free index to
// any token seen for the first time.
func (v *Vocab) Encode(tokens []string) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		idx, ok := v.Index[tok]
		if !ok {
			idx = len(v.Index)
			v.Index[tok] = idx
		}
		out[i] = idx
	}

	return out
}

// EncodeFrozen maps tokens to indices without growing the vocabulary;
// an unknown token is an error. This is the inference-time path, where a
// fresh index would address an untrained embedding row.
func (v *Vocab) EncodeFrozen(tokens []string) ([]int, error) {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		idx, ok := v.Index[tok]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownToken, tok)
		}
		out[i] = idx
	}

	return out, nil
}
