// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embeddings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdiddy/nli-prep/internal/vocab"
)

func writeVectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDict() vocab.WordDict {
	return vocab.WordDict{
		vocab.PadToken: 0,
		vocab.OOVToken: 1,
		"the":          2,
		"cat":          3,
	}
}

func TestBuildMatrix(t *testing.T) {
	path := writeVectors(t, "the 0.1 0.2\ncat 0.3 0.4\ndog 0.5 0.6\n")

	matrix, stats, err := BuildMatrix(path, testDict())
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}

	if stats.Dim != 2 {
		t.Errorf("Dim = %d, want 2", stats.Dim)
	}
	if stats.Found != 2 {
		t.Errorf("Found = %d, want 2", stats.Found)
	}
	// Only _OOV_ lacks a vector; _PAD_ does not count as missing.
	if stats.Missing != 1 {
		t.Errorf("Missing = %d, want 1", stats.Missing)
	}

	if len(matrix) != 4 {
		t.Fatalf("rows = %d, want 4", len(matrix))
	}
	if !reflect.DeepEqual(matrix[2], []float64{0.1, 0.2}) {
		t.Errorf("row for \"the\" = %v", matrix[2])
	}
	if !reflect.DeepEqual(matrix[3], []float64{0.3, 0.4}) {
		t.Errorf("row for \"cat\" = %v", matrix[3])
	}
	if !reflect.DeepEqual(matrix[0], []float64{0, 0}) {
		t.Errorf("padding row = %v, want zeros", matrix[0])
	}
	if len(matrix[1]) != 2 {
		t.Errorf("oov row has dim %d, want 2", len(matrix[1]))
	}
}

func TestBuildMatrix_Word2vecHeader(t *testing.T) {
	path := writeVectors(t, "3 2\nthe 0.1 0.2\ncat 0.3 0.4\ndog 0.5 0.6\n")

	_, stats, err := BuildMatrix(path, testDict())
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	if stats.Found != 2 {
		t.Errorf("Found = %d, want 2 (header must be skipped, not parsed as a word)", stats.Found)
	}
}

func TestBuildMatrix_BadLines(t *testing.T) {
	path := writeVectors(t, "the 0.1 0.2\ncat 0.3 oops\n")

	matrix, stats, err := BuildMatrix(path, testDict())
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	if stats.BadLines != 1 {
		t.Errorf("BadLines = %d, want 1", stats.BadLines)
	}
	if stats.Found != 1 {
		t.Errorf("Found = %d, want 1", stats.Found)
	}
	// "cat" falls back to random initialization.
	if len(matrix[3]) != 2 {
		t.Errorf("cat row has dim %d, want 2", len(matrix[3]))
	}
}

func TestBuildMatrix_DimensionMismatch(t *testing.T) {
	path := writeVectors(t, "the 0.1 0.2\ncat 0.3 0.4 0.5\n")

	_, stats, err := BuildMatrix(path, testDict())
	if err != nil {
		t.Fatalf("BuildMatrix: %v", err)
	}
	if stats.Dim != 2 {
		t.Errorf("Dim = %d, want 2", stats.Dim)
	}
	if stats.BadLines != 1 {
		t.Errorf("BadLines = %d, want 1", stats.BadLines)
	}
}

func TestBuildMatrix_NoUsableVectors(t *testing.T) {
	path := writeVectors(t, "dog 0.5 0.6\n")

	_, _, err := BuildMatrix(path, testDict())
	if err == nil {
		t.Fatal("expected error when no vector matches the vocabulary")
	}
}
