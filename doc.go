// Package crfseq is a linear-chain Conditional Random Field toolkit for
// character-level sequence labeling (named-entity tagging), from the
// log-space dynamic programs up to parallel training and serving.
//
// 🚀 What is crfseq?
//
//	A small, pure-Go library that brings together:
//		• crf      — transition matrix, forward algorithm, gold-path scoring,
//		             negative log-likelihood with exact gradients, Viterbi decoding
//		• emission — the per-position score producer: a trainable
//		             embedding + bidirectional-RNN network behind a tiny interface
//		• train    — balanced corpus sharding, SGD with weight decay,
//		             lock-free parallel training over one shared model, gob persistence
//		• corpus   — JSON training data & vocabulary plumbing, bracketed output
//
// ✨ Why choose crfseq?
//
//   - Exact inference – Viterbi decoding returns the globally optimal tag path
//   - Numerically safe – every log-domain sum goes through one tested log-sum-exp
//   - Reproducible – seeded initialization, deterministic tie-breaking
//   - Pure Go – no cgo, no tensor runtime, no hidden deps
//
// Typical pipeline:
//
//	tags, _ := crf.NewTagSet([]string{"B", "I", "O"})
//	model, _ := train.LoadOrTrain("model.gob", tags, netCfg, examples)
//	score, path, _ := model.Tag(encoded)
//
// Dive into each package's doc.go for the algorithmic details and into
// cmd/nertrain and cmd/nerserver for end-to-end usage.
package crfseq
