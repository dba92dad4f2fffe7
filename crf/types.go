// Package crf defines core types and sentinel errors for the linear-chain
// CRF layer: the tag inventory (with START/STOP sentinels) and the input
// validation shared by every dynamic program in this package.
package crf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the CRF core.
var (
	// ErrEmptyInput indicates that an empty emission matrix was supplied.
	ErrEmptyInput = errors.New("crf: emission matrix must be non-empty")

	// ErrDimensionMismatch indicates that an emission row or gradient
	// matrix does not match the tag-set size.
	ErrDimensionMismatch = errors.New("crf: dimension does not match tag-set size")

	// ErrLengthMismatch indicates that a tag path and the emission matrix
	// disagree on sequence length.
	ErrLengthMismatch = errors.New("crf: tag path length does not match emission length")

	// ErrTagOutOfRange indicates a tag index outside [0, Size).
	ErrTagOutOfRange = errors.New("crf: tag index out of range")

	// ErrNilTransitions indicates that a nil *Transitions was passed in.
	ErrNilTransitions = errors.New("crf: transitions are nil")

	// ErrEmptyTagSet indicates that a tag set was requested with no real tags.
	ErrEmptyTagSet = errors.New("crf: tag set must contain at least one real tag")

	// ErrDuplicateTag indicates a repeated or reserved tag name.
	ErrDuplicateTag = errors.New("crf: duplicate or reserved tag name")
)

// Sentinel tag names. They are appended automatically by NewTagSet and
// may not be used as real tag names.
const (
	StartTag = "<START>"
	StopTag  = "<STOP>"
)

// MinScore is the dominating negative constant standing in for -∞ in the
// transition matrix and the dynamic-program initial vectors. It is large
// enough (in magnitude) to dominate any achievable path score while
// remaining finite, so log-space arithmetic never produces NaN.
const MinScore = -10000.0

// TagSet is a fixed, finite tag inventory. Real tags occupy indices
// 0..Size()-3 in declaration order; the START and STOP sentinels are
// always the last two indices. Fields are exported so a TagSet survives
// gob round-trips inside a persisted model bundle.
type TagSet struct {
	Names []string       // index → name, sentinels last
	Index map[string]int // name → index
}

// NewTagSet builds a TagSet from the given real tag names and appends the
// START and STOP sentinels. Names must be unique and must not collide
// with the sentinel names.
func NewTagSet(names []string) (TagSet, error) {
	if len(names) == 0 {
		return TagSet{}, ErrEmptyTagSet
	}
	ts := TagSet{
		Names: make([]string, 0, len(names)+2),
		Index: make(map[string]int, len(names)+2),
	}
	for _, name := range append(append([]string{}, names...), StartTag, StopTag) {
		if _, dup := ts.Index[name]; dup {
			return TagSet{}, fmt.Errorf("%w: %q", ErrDuplicateTag, name)
		}
		ts.Index[name] = len(ts.Names)
		ts.Names = append(ts.Names, name)
	}

	return ts, nil
}

// Size returns the total number of tags, sentinels included.
func (ts TagSet) Size() int { return len(ts.Names) }

// Start returns the index of the START sentinel.
func (ts TagSet) Start() int { return len(ts.Names) - 2 }

// Stop returns the index of the STOP sentinel.
func (ts TagSet) Stop() int { return len(ts.Names) - 1 }

// Name returns the name of tag index i.
func (ts TagSet) Name(i int) (string, error) {
	if i < 0 || i >= len(ts.Names) {
		return "", fmt.Errorf("%w: %d", ErrTagOutOfRange, i)
	}

	return ts.Names[i], nil
}

// checkEmissions validates that e is a non-empty L×size matrix.
func checkEmissions(e [][]float64, size int) error {
	if len(e) == 0 {
		return ErrEmptyInput
	}
	for t, row := range e {
		if len(row) != size {
			return fmt.Errorf("%w: emission row %d has width %d, want %d",
				ErrDimensionMismatch, t, len(row), size)
		}
	}

	return nil
}

// checkPath validates that path has the given length and that every tag
// index is within [0, size). Per the loss contract, no further content
// checks are performed: any in-range index sequence is accepted.
func checkPath(path []int, length, size int) error {
	if len(path) != length {
		return fmt.Errorf("%w: got %d tags for %d positions",
			ErrLengthMismatch, len(path), length)
	}
	for t, tag := range path {
		if tag < 0 || tag >= size {
			return fmt.Errorf("%w: tag %d at position %d (size %d)",
				ErrTagOutOfRange, tag, t, size)
		}
	}

	return nil
}
