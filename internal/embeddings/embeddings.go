// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embeddings builds an embedding matrix for a word dictionary from
// a pretrained vector file in GloVe or word2vec text format.
package embeddings

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/nli-prep/internal/vocab"
)

// Matrix is a dense embedding matrix; row i is the vector of the word with
// dictionary index i.
type Matrix [][]float64

// BuildStats summarizes embedding coverage of the word dictionary.
type BuildStats struct {
	// Dim is the vector dimensionality taken from the file.
	Dim int `yaml:"dim"`
	// Found counts dictionary words with a pretrained vector.
	Found int `yaml:"found"`
	// Missing counts dictionary words initialized randomly (the special
	// tokens other than _PAD_ are always among them).
	Missing int `yaml:"missing"`
	// BadLines counts vector lines that failed to parse.
	BadLines int `yaml:"bad_lines"`
}

// BuildMatrix reads the vector file at path and assembles a
// len(words) x Dim matrix. Words absent from the file get a standard
// normal random row; the _PAD_ row is left at zero. A first line of
// exactly two integers is treated as a word2vec header and skipped.
func BuildMatrix(path string, words vocab.WordDict) (Matrix, BuildStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, BuildStats{}, fmt.Errorf("opening embeddings file: %w", err)
	}
	defer f.Close()

	vectors := make(map[string][]float64)
	var stats BuildStats

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if first {
			first = false
			if isCountHeader(fields) {
				continue
			}
		}
		if len(fields) < 2 {
			continue
		}

		word := fields[0]
		if _, wanted := words[word]; !wanted {
			continue
		}

		vec := make([]float64, len(fields)-1)
		ok := true
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vec[i] = v
		}
		if !ok {
			stats.BadLines++
			continue
		}

		if stats.Dim == 0 {
			stats.Dim = len(vec)
		}
		if len(vec) != stats.Dim {
			stats.BadLines++
			continue
		}
		vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, BuildStats{}, fmt.Errorf("reading embeddings file: %w", err)
	}

	if stats.Dim == 0 {
		return nil, BuildStats{}, fmt.Errorf("no usable vectors in %s for the current vocabulary", path)
	}

	matrix := make(Matrix, len(words))
	for word, idx := range words {
		row := make([]float64, stats.Dim)
		switch vec, ok := vectors[word]; {
		case ok:
			copy(row, vec)
			stats.Found++
		case word == vocab.PadToken:
			// Padding stays at zero.
		default:
			for i := range row {
				row[i] = rand.NormFloat64()
			}
			stats.Missing++
		}
		matrix[idx] = row
	}

	return matrix, stats, nil
}

// isCountHeader reports whether fields form a word2vec text header
// ("<vocab-size> <dim>").
func isCountHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}
