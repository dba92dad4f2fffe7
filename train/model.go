package train

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/crfseq/corpus"
	"github.com/katalvlaran/crfseq/crf"
	"github.com/katalvlaran/crfseq/emission"
)

// Model bundles the two trained parameter sets: the CRF transition
// matrix and the emission network. During parallel training it is the
// single shared mutable object; once training (or loading) completes it
// is treated as immutable and used for inference only.
type Model struct {
	Trans *crf.Transitions
	Net   *emission.BiRNN
}

// NewModel builds an untrained model for the given tag set. The
// network's TagCount is forced to the tag-set size (sentinels included)
// so the emission matrix always matches the CRF's width.
func NewModel(tags crf.TagSet, netCfg emission.Config) (*Model, error) {
	netCfg.TagCount = tags.Size()
	net, err := emission.New(netCfg)
	if err != nil {
		return nil, err
	}

	return &Model{
		Trans: crf.NewTransitions(tags, netCfg.Seed),
		Net:   net,
	}, nil
}

// Tag runs inference: emissions for the encoded sequence, then Viterbi
// decoding. It returns the best path's score and the path itself
// (sentinels excluded).
func (m *Model) Tag(seq []int) (float64, []int, error) {
	e, err := m.Net.Emit(seq)
	if err != nil {
		return 0, nil, err
	}

	return crf.Decode(e, m.Trans)
}

// Save persists the model as one opaque gob bundle at path, creating
// the parent directory if needed.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("train: creating model directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("train: creating model file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("train: encoding model: %w", err)
	}

	return nil
}

// Load reads a persisted model bundle. A missing file is reported as
// ErrModelNotFound — the expected "go train" signal — while any other
// failure (unreadable file, corrupt bundle) is a distinct error that
// callers must propagate rather than swallow.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}

		return nil, fmt.Errorf("train: opening model file: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("train: decoding model %s: %w", path, err)
	}

	return &m, nil
}

// LoadOrTrain returns the model at path if one is persisted there;
// otherwise it trains a fresh model on the corpus, saves it to path, and
// returns it. Only ErrModelNotFound falls through to training — a
// corrupt or unreadable bundle propagates as an error.
func LoadOrTrain(path string, tags crf.TagSet, netCfg emission.Config,
	examples []corpus.Example, opts ...Option) (*Model, error) {
	m, err := Load(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrModelNotFound) {
		return nil, err
	}

	m, err = NewModel(tags, netCfg)
	if err != nil {
		return nil, err
	}
	if err := Train(m, examples, opts...); err != nil {
		return nil, err
	}
	if err := m.Save(path); err != nil {
		return nil, err
	}

	return m, nil
}
