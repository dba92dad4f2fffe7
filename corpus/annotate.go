package corpus

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/crfseq/crf"
)

// Annotate renders a decoded tag path over its character sequence as
// bracketed-entity text: '[' opens at each B-tagged character, ']'
// closes before the first character that leaves the entity (and at the
// end of the sequence for a trailing entity).
//
// The tag set must contain "B" and "I"; every other tag ends an entity.
func Annotate(tokens []string, path []int, tags crf.TagSet) (string, error) {
	if len(tokens) != len(path) {
		return "", fmt.Errorf("%w: %d characters, %d tags",
			ErrPairLength, len(tokens), len(path))
	}
	b, okB := tags.Index["B"]
	i, okI := tags.Index["I"]
	if !okB || !okI {
		return "", fmt.Errorf("%w: tag set has no B/I pair", ErrUnknownLabel)
	}

	var sb strings.Builder
	inside := false
	for pos, tok := range tokens {
		switch {
		case path[pos] == b:
			if inside {
				sb.WriteByte(']') // back-to-back entities: close, reopen
			}
			sb.WriteByte('[')
			inside = true
		case inside && path[pos] != i:
			sb.WriteByte(']')
			inside = false
		}
		sb.WriteString(tok)
	}
	if inside {
		sb.WriteByte(']')
	}

	return sb.String(), nil
}
