// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus locates and reads tab-separated NLI corpus files.
//
// The expected layout is the SNLI distribution format: a header line
// followed by one pair per line, with the gold label in column 0, the
// binary-parse premise and hypothesis in columns 1 and 2, and the pair ID
// in column 7. Parse trees are flattened by stripping parentheses.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	labelColumn      = 0
	premiseColumn    = 1
	hypothesisColumn = 2
	pairIDColumn     = 7
	minColumns       = 8

	// noGoldLabel marks pairs without annotator consensus.
	noGoldLabel = "-"
)

// asciiPunctuation matches Python's string.punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Options controls how sentences are normalized while reading.
type Options struct {
	// Lowercase lowercases premises and hypotheses.
	Lowercase bool

	// IgnorePunctuation replaces ASCII punctuation with spaces before
	// tokenization.
	IgnorePunctuation bool

	// Stopwords are dropped from the token streams.
	Stopwords []string
}

// Data holds one corpus split as parallel slices: Premises[i],
// Hypotheses[i] and Labels[i] describe the pair IDs[i].
type Data struct {
	IDs        []string
	Premises   [][]string
	Hypotheses [][]string
	Labels     []string

	// SkippedNoLabel counts pairs dropped for a "-" gold label.
	SkippedNoLabel int
	// SkippedShort counts malformed lines with too few columns.
	SkippedShort int
}

// Len returns the number of pairs in the split.
func (d *Data) Len() int {
	return len(d.IDs)
}

// Splits names the three corpus files found in a dataset directory.
type Splits struct {
	Train string
	Dev   string
	Test  string
}

// splitPatterns maps each split to its filename glob.
var splitPatterns = []struct {
	name    string
	pattern string
}{
	{"train", "*_train.txt"},
	{"dev", "*_dev.txt"},
	{"test", "*_test.txt"},
}

// FindSplits scans dataDir for the train, dev and test files by filename
// pattern. A pattern that matches nothing is an error; when several files
// match, the last one in directory order wins.
func FindSplits(dataDir string) (Splits, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return Splits{}, fmt.Errorf("reading dataset directory: %w", err)
	}

	found := make(map[string]string, len(splitPatterns))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, sp := range splitPatterns {
			if ok, _ := filepath.Match(sp.pattern, entry.Name()); ok {
				found[sp.name] = filepath.Join(dataDir, entry.Name())
			}
		}
	}

	for _, sp := range splitPatterns {
		if found[sp.name] == "" {
			return Splits{}, fmt.Errorf("no file matching %q in %s", sp.pattern, dataDir)
		}
	}

	return Splits{
		Train: found["train"],
		Dev:   found["dev"],
		Test:  found["test"],
	}, nil
}

// Read parses one corpus split. Pairs whose gold label is "-" are skipped,
// as are lines with fewer than eight columns; both are counted on the
// returned Data.
func Read(path string, opts Options) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	stopwords := make(map[string]struct{}, len(opts.Stopwords))
	for _, w := range opts.Stopwords {
		stopwords[w] = struct{}{}
	}

	data := &Data{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	first := true
	for scanner.Scan() {
		if first {
			// Header line.
			first = false
			continue
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if cols[labelColumn] == noGoldLabel {
			data.SkippedNoLabel++
			continue
		}
		if len(cols) < minColumns {
			data.SkippedShort++
			continue
		}

		data.IDs = append(data.IDs, cols[pairIDColumn])
		data.Labels = append(data.Labels, cols[labelColumn])
		data.Premises = append(data.Premises, tokenize(cols[premiseColumn], opts, stopwords))
		data.Hypotheses = append(data.Hypotheses, tokenize(cols[hypothesisColumn], opts, stopwords))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	return data, nil
}

// tokenize flattens a binary-parse sentence into normalized tokens.
func tokenize(sentence string, opts Options, stopwords map[string]struct{}) []string {
	// Drop the parse-tree parentheses, keeping the leaves.
	sentence = strings.Map(func(r rune) rune {
		if r == '(' || r == ')' {
			return -1
		}
		return r
	}, sentence)

	if opts.Lowercase {
		sentence = strings.ToLower(sentence)
	}
	if opts.IgnorePunctuation {
		sentence = strings.Map(func(r rune) rune {
			if strings.ContainsRune(asciiPunctuation, r) {
				return ' '
			}
			return r
		}, sentence)
	}

	fields := strings.Fields(sentence)
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, drop := stopwords[w]; drop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
