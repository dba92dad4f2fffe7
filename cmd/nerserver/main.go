// Command nerserver exposes a trained CRF named-entity model as a JSON
// REST API.
//
// Endpoints:
//
//	GET  /api/tags             list the tag inventory
//	POST /api/tag  body: {"text":"..."}  tag a character sequence
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/katalvlaran/crfseq/corpus"
	"github.com/katalvlaran/crfseq/train"
)

// ---- JSON response types ------------------------------------------------

type tagResponse struct {
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
	Annotated string   `json:"annotated"`
	Score     float64  `json:"score"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleTag(model *train.Model, vocab *corpus.Vocab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		// Character-level model: one token per rune.
		tokens := strings.Split(body.Text, "")
		seq, err := vocab.EncodeFrozen(tokens)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		score, path, err := model.Tag(seq)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		tags := model.Trans.Tags
		names := make([]string, len(path))
		for i, tag := range path {
			name, err := tags.Name(tag)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			names[i] = name
		}
		annotated, err := corpus.Annotate(tokens, path, tags)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, tagResponse{
			Text:      body.Text,
			Tags:      names,
			Annotated: annotated,
			Score:     score,
		})
	}
}

func handleTags(model *train.Model) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		// Real tags only, boundary sentinels stay internal.
		tags := model.Trans.Tags
		writeJSON(w, http.StatusOK, tagsResponse{Tags: tags.Names[:tags.Start()]})
	}
}

// ---- main ---------------------------------------------------------------

func main() {
	modelPath := flag.String("model", "data/model/ner/model.gob", "model bundle path")
	vocabPath := flag.String("vocab", "resource/vocab.json", "vocabulary JSON")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	model, err := train.Load(*modelPath)
	if err != nil {
		log.Fatalf("loading model: %v", err)
	}
	vocab, err := corpus.LoadVocab(*vocabPath)
	if err != nil {
		log.Fatalf("loading vocabulary: %v", err)
	}
	log.Printf("model loaded: %d tags, %d characters", model.Trans.Tags.Start(), vocab.Size())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tag", handleTag(model, vocab))
	mux.HandleFunc("/api/tags", handleTags(model))

	handler := cors.Default().Handler(mux)
	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
