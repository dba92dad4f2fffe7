package corpus_test

import (
	"testing"

	"github.com/katalvlaran/crfseq/corpus"
	"github.com/katalvlaran/crfseq/crf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bio builds the standard {B, I, O} tag set (B=0, I=1, O=2).
func bio(t *testing.T) crf.TagSet {
	t.Helper()
	tags, err := crf.NewTagSet([]string{"B", "I", "O"})
	require.NoError(t, err)

	return tags
}

// TestAnnotate_Brackets verifies entity bracketing across the common
// shapes: interior entity, trailing entity, back-to-back entities.
func TestAnnotate_Brackets(t *testing.T) {
	tags := bio(t)
	cases := []struct {
		name   string
		tokens []string
		path   []int
		want   string
	}{
		{"interior", []string{"x", "a", "b", "y"}, []int{2, 0, 1, 2}, "x[ab]y"},
		{"trailing", []string{"x", "a", "b"}, []int{2, 0, 1}, "x[ab]"},
		{"back-to-back", []string{"a", "b", "c"}, []int{0, 0, 1}, "[a][bc]"},
		{"no entities", []string{"x", "y"}, []int{2, 2}, "xy"},
		{"single char entity", []string{"a"}, []int{0}, "[a]"},
	}
	for _, tc := range cases {
		got, err := corpus.Annotate(tc.tokens, tc.path, tags)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

// TestAnnotate_Validation verifies length and tag-set checks.
func TestAnnotate_Validation(t *testing.T) {
	tags := bio(t)

	_, err := corpus.Annotate([]string{"a", "b"}, []int{0}, tags)
	assert.ErrorIs(t, err, corpus.ErrPairLength)

	noBI, err := crf.NewTagSet([]string{"X", "Y"})
	require.NoError(t, err)
	_, err = corpus.Annotate([]string{"a"}, []int{0}, noBI)
	assert.ErrorIs(t, err, corpus.ErrUnknownLabel)
}
