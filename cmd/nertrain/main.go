// Command nertrain trains (or loads) a character-level CRF named-entity
// model and echoes bracketed-entity predictions for the training corpus.
//
// Usage:
//
//	nertrain -data data/training_data.json -vocab resource/vocab.json \
//	         -model data/model/ner/model.gob -epochs 15 -workers 4
//
// A persisted model at -model is reused as-is; a missing one triggers a
// full parallel training run followed by a save. Any other load failure
// (e.g. a corrupt bundle) aborts.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/katalvlaran/crfseq/corpus"
	"github.com/katalvlaran/crfseq/crf"
	"github.com/katalvlaran/crfseq/emission"
	"github.com/katalvlaran/crfseq/train"
)

func main() {
	dataPath := flag.String("data", "data/training_data.json", "training data JSON")
	vocabPath := flag.String("vocab", "resource/vocab.json", "vocabulary JSON")
	modelPath := flag.String("model", "data/model/ner/model.gob", "model bundle path")
	embedDim := flag.Int("embed", 5, "embedding width")
	hiddenDim := flag.Int("hidden", 4, "hidden size per RNN direction")
	epochs := flag.Int("epochs", 15, "training passes per shard")
	learnRate := flag.Float64("lr", 0.01, "SGD learning rate")
	decay := flag.Float64("decay", 1e-4, "weight decay")
	workers := flag.Int("workers", 4, "parallel training workers")
	seed := flag.Uint64("seed", 1, "initialization seed")
	flag.Parse()

	pairs, err := corpus.Load(*dataPath)
	if err != nil {
		log.Fatalf("loading training data: %v", err)
	}
	log.Printf("loaded %d training pairs from %s", len(pairs), *dataPath)

	vocab, err := corpus.LoadVocab(*vocabPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("loading vocabulary: %v", err)
		}
		log.Printf("vocabulary %s not found, building from corpus", *vocabPath)
		vocab = corpus.NewVocab()
	}

	tags, err := crf.NewTagSet([]string{"B", "I", "O"})
	if err != nil {
		log.Fatalf("building tag set: %v", err)
	}
	examples, err := corpus.Encode(pairs, vocab, tags)
	if err != nil {
		log.Fatalf("encoding corpus: %v", err)
	}
	log.Printf("vocabulary covers %d characters", vocab.Size())

	model, err := train.LoadOrTrain(*modelPath, tags, emission.Config{
		VocabSize: vocab.Size(),
		EmbedDim:  *embedDim,
		HiddenDim: *hiddenDim,
		Seed:      *seed,
	}, examples,
		train.WithEpochs(*epochs),
		train.WithLearnRate(*learnRate),
		train.WithWeightDecay(*decay),
		train.WithWorkers(*workers))
	if err != nil {
		log.Fatalf("training: %v", err)
	}
	log.Printf("model ready at %s", *modelPath)

	// Echo predictions over the training corpus, original-style.
	for _, p := range pairs {
		started := time.Now()
		seq, err := vocab.EncodeFrozen(p.Tokens)
		if err != nil {
			log.Fatalf("encoding sentence: %v", err)
		}
		score, path, err := model.Tag(seq)
		if err != nil {
			log.Fatalf("decoding: %v", err)
		}
		annotated, err := corpus.Annotate(p.Tokens, path, tags)
		if err != nil {
			log.Fatalf("rendering: %v", err)
		}
		log.Printf("%s (score %.3f, %s)", annotated, score, time.Since(started))
	}
}
