// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const header = "gold_label\tsentence1_binary_parse\tsentence2_binary_parse\tsentence1_parse\tsentence2_parse\tsentence1\tsentence2\tpairID"

// pairLine builds a corpus line with the columns Read cares about filled in.
func pairLine(label, premise, hypothesis, pairID string) string {
	return strings.Join([]string{label, premise, hypothesis, "x", "x", "x", "x", pairID}, "\t")
}

func writeCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snli_1.0_train.txt")
	content := header + "\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name           string
		lines          []string
		opts           Options
		wantPremises   [][]string
		wantHypotheses [][]string
		wantLabels     []string
		wantIDs        []string
	}{
		{
			name: "parse trees flattened",
			lines: []string{
				pairLine("entailment", "( ( A man ) ( is running ) )", "( Someone moves )", "p1"),
			},
			wantPremises:   [][]string{{"A", "man", "is", "running"}},
			wantHypotheses: [][]string{{"Someone", "moves"}},
			wantLabels:     []string{"entailment"},
			wantIDs:        []string{"p1"},
		},
		{
			name: "lowercase",
			lines: []string{
				pairLine("neutral", "( A Dog )", "( The CAT )", "p2"),
			},
			opts:           Options{Lowercase: true},
			wantPremises:   [][]string{{"a", "dog"}},
			wantHypotheses: [][]string{{"the", "cat"}},
			wantLabels:     []string{"neutral"},
			wantIDs:        []string{"p2"},
		},
		{
			name: "punctuation replaced",
			lines: []string{
				pairLine("contradiction", "( Hello, world! )", "( Good-bye )", "p3"),
			},
			opts:           Options{IgnorePunctuation: true},
			wantPremises:   [][]string{{"Hello", "world"}},
			wantHypotheses: [][]string{{"Good", "bye"}},
			wantLabels:     []string{"contradiction"},
			wantIDs:        []string{"p3"},
		},
		{
			name: "stopwords dropped",
			lines: []string{
				pairLine("entailment", "( the man runs )", "( a man moves )", "p4"),
			},
			opts:           Options{Stopwords: []string{"the", "a"}},
			wantPremises:   [][]string{{"man", "runs"}},
			wantHypotheses: [][]string{{"man", "moves"}},
			wantLabels:     []string{"entailment"},
			wantIDs:        []string{"p4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCorpus(t, tt.lines...)
			data, err := Read(path, tt.opts)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(data.Premises, tt.wantPremises) {
				t.Errorf("premises = %v, want %v", data.Premises, tt.wantPremises)
			}
			if !reflect.DeepEqual(data.Hypotheses, tt.wantHypotheses) {
				t.Errorf("hypotheses = %v, want %v", data.Hypotheses, tt.wantHypotheses)
			}
			if !reflect.DeepEqual(data.Labels, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", data.Labels, tt.wantLabels)
			}
			if !reflect.DeepEqual(data.IDs, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", data.IDs, tt.wantIDs)
			}
		})
	}
}

func TestRead_SkipsUnusableLines(t *testing.T) {
	path := writeCorpus(t,
		pairLine("-", "( ignored )", "( ignored )", "p1"),
		"entailment\tonly\tthree",
		pairLine("neutral", "( kept )", "( kept )", "p2"),
		"",
	)

	data, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if data.Len() != 1 {
		t.Fatalf("pairs = %d, want 1", data.Len())
	}
	if data.SkippedNoLabel != 1 {
		t.Errorf("SkippedNoLabel = %d, want 1", data.SkippedNoLabel)
	}
	if data.SkippedShort != 1 {
		t.Errorf("SkippedShort = %d, want 1", data.SkippedShort)
	}
	if data.IDs[0] != "p2" {
		t.Errorf("kept pair = %q, want p2", data.IDs[0])
	}
}

func TestFindSplits(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"snli_1.0_train.txt",
		"snli_1.0_dev.txt",
		"snli_1.0_test.txt",
		"README.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	splits, err := FindSplits(dir)
	if err != nil {
		t.Fatalf("FindSplits: %v", err)
	}
	if filepath.Base(splits.Train) != "snli_1.0_train.txt" {
		t.Errorf("train = %q", splits.Train)
	}
	if filepath.Base(splits.Dev) != "snli_1.0_dev.txt" {
		t.Errorf("dev = %q", splits.Dev)
	}
	if filepath.Base(splits.Test) != "snli_1.0_test.txt" {
		t.Errorf("test = %q", splits.Test)
	}
}

func TestFindSplits_MissingSplit(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"snli_1.0_train.txt", "snli_1.0_dev.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	_, err := FindSplits(dir)
	if err == nil {
		t.Fatal("expected error for missing test split")
	}
	if !strings.Contains(err.Error(), "*_test.txt") {
		t.Errorf("error %q does not name the missing pattern", err)
	}
}
