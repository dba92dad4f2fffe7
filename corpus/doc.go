// Package corpus is the plumbing around the CRF core: it loads JSON
// training data and vocabularies, encodes character sequences and label
// names into the integer form the model consumes, and renders decoded
// tag paths back into human-readable bracketed-entity text.
//
// Data formats:
//
//	training data — a JSON array of [characters, labels] pairs:
//	    [[["우","리"," ","집"], ["O","O","O","B"]], ...]
//	vocabulary    — a JSON object mapping each character to its index:
//	    {"우": 0, "리": 1, ...}
//
// Characters absent from a loaded vocabulary are appended on first sight
// during encoding, so a partially built vocabulary grows to cover the
// corpus (growth is not safe for concurrent use; encode before training
// starts).
//
// Rendering assumes the conventional {B, I, O} scheme: '[' opens an
// entity at a B tag, ']' closes it before the first position that leaves
// the entity.
package corpus
