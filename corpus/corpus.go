package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/crfseq/crf"
)

// Sentinel errors returned by the corpus plumbing.
var (
	// ErrPairLength indicates a training pair whose character and label
	// halves differ in length — a malformed corpus entry, never repaired.
	ErrPairLength = errors.New("corpus: characters and labels differ in length")

	// ErrUnknownLabel indicates a label name absent from the tag set.
	ErrUnknownLabel = errors.New("corpus: unknown label name")

	// ErrUnknownToken indicates a character absent from a frozen vocabulary.
	ErrUnknownToken = errors.New("corpus: token not in vocabulary")
)

// Pair is one raw training example: a character sequence and its label
// sequence, both as strings, of identical length.
type Pair struct {
	Tokens []string
	Labels []string
}

// Example is one encoded training example: integer token and label
// indices of identical length. The model layers assume the invariant and
// do not re-validate it.
type Example struct {
	Input  []int
	Labels []int
}

// Load reads a training-data JSON file: an array of two-element arrays,
// characters first, labels second. Pairs with mismatched halves are
// rejected here, at the boundary, so the core never sees them.
func Load(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading %s: %w", path, err)
	}

	var raw [][2][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("corpus: parsing %s: %w", path, err)
	}

	pairs := make([]Pair, 0, len(raw))
	for i, entry := range raw {
		if len(entry[0]) != len(entry[1]) {
			return nil, fmt.Errorf("%w: entry %d has %d characters and %d labels",
				ErrPairLength, i, len(entry[0]), len(entry[1]))
		}
		pairs = append(pairs, Pair{Tokens: entry[0], Labels: entry[1]})
	}

	return pairs, nil
}

// Encode turns raw pairs into integer examples, growing the vocabulary
// on unseen characters and resolving label names through the tag set.
func Encode(pairs []Pair, v *Vocab, tags crf.TagSet) ([]Example, error) {
	out := make([]Example, 0, len(pairs))
	for i, p := range pairs {
		labels := make([]int, len(p.Labels))
		for t, name := range p.Labels {
			idx, ok := tags.Index[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q in entry %d", ErrUnknownLabel, name, i)
			}
			labels[t] = idx
		}
		out = append(out, Example{Input: v.Encode(p.Tokens), Labels: labels})
	}

	return out, nil
}
