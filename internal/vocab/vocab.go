// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab builds word and label dictionaries from a corpus split and
// transforms token sequences into index sequences.
package vocab

import (
	"sort"

	"github.com/pdiddy/nli-prep/internal/corpus"
)

// Special vocabulary entries. Padding and out-of-vocabulary are always
// present; the sentence-boundary symbols only when configured.
const (
	PadToken = "_PAD_"
	OOVToken = "_OOV_"
	BOSToken = "_BOS_"
	EOSToken = "_EOS_"

	PadIndex = 0
	OOVIndex = 1
)

// HiddenLabel marks unlabeled pairs (e.g. blind test sets); it transforms
// to -1 instead of being dropped.
const HiddenLabel = "hidden"

// WordDict maps words to their integer indices.
type WordDict map[string]int

// Options controls word dictionary construction.
type Options struct {
	// NumWords caps the dictionary at the N most frequent words. Zero
	// keeps every word.
	NumWords int

	// BOS and EOS, when non-empty, reserve indices for the _BOS_ and
	// _EOS_ symbols and cause them to wrap every transformed sentence.
	BOS string
	EOS string
}

// BuildWordDict counts every token in the premises and hypotheses of data
// and assigns indices by descending frequency, alphabetical on ties.
// Indices 0 and 1 are _PAD_ and _OOV_; _BOS_ and _EOS_ follow when
// configured. The returned counts cover all corpus words, including any
// cut off by NumWords.
func BuildWordDict(data *corpus.Data, opts Options) (WordDict, map[string]int) {
	counts := make(map[string]int)
	for _, sentence := range data.Premises {
		for _, w := range sentence {
			counts[w]++
		}
	}
	for _, sentence := range data.Hypotheses {
		for _, w := range sentence {
			counts[w]++
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	numWords := opts.NumWords
	if numWords <= 0 || numWords > len(words) {
		numWords = len(words)
	}

	dict := WordDict{
		PadToken: PadIndex,
		OOVToken: OOVIndex,
	}
	offset := 2
	if opts.BOS != "" {
		dict[BOSToken] = offset
		offset++
	}
	if opts.EOS != "" {
		dict[EOSToken] = offset
		offset++
	}
	for i, w := range words[:numWords] {
		dict[w] = i + offset
	}

	return dict, counts
}

// BuildLabelDict numbers the distinct labels alphabetically from zero.
func BuildLabelDict(labels []string) map[string]int {
	seen := make(map[string]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for l := range seen {
		names = append(names, l)
	}
	sort.Strings(names)

	dict := make(map[string]int, len(names))
	for i, l := range names {
		dict[l] = i
	}
	return dict
}

// IndexedData is a corpus split with tokens and labels replaced by their
// dictionary indices.
type IndexedData struct {
	IDs        []string
	Premises   [][]int
	Hypotheses [][]int
	Labels     []int

	// DroppedLabels counts pairs discarded because their label is not in
	// the label dictionary.
	DroppedLabels int
}

// Transformer converts corpus splits to indices using fixed dictionaries.
type Transformer struct {
	Words  WordDict
	Labels map[string]int

	// BOS and EOS mirror the Options used to build the word dictionary.
	BOS string
	EOS string
}

// Transform maps every pair of data through the dictionaries. Pairs whose
// label has no dictionary entry are dropped, except HiddenLabel, which
// maps to -1. Unknown words map to OOVIndex.
func (t *Transformer) Transform(data *corpus.Data) *IndexedData {
	out := &IndexedData{
		IDs:        make([]string, 0, data.Len()),
		Premises:   make([][]int, 0, data.Len()),
		Hypotheses: make([][]int, 0, data.Len()),
		Labels:     make([]int, 0, data.Len()),
	}

	for i, premise := range data.Premises {
		label := data.Labels[i]
		idx, known := t.Labels[label]
		switch {
		case known:
		case label == HiddenLabel:
			idx = -1
		default:
			out.DroppedLabels++
			continue
		}

		out.IDs = append(out.IDs, data.IDs[i])
		out.Labels = append(out.Labels, idx)
		out.Premises = append(out.Premises, t.SentenceToIndices(premise))
		out.Hypotheses = append(out.Hypotheses, t.SentenceToIndices(data.Hypotheses[i]))
	}

	return out
}

// SentenceToIndices maps one token sequence to indices, wrapping it in the
// sentence-boundary symbols when those are configured.
func (t *Transformer) SentenceToIndices(tokens []string) []int {
	indices := make([]int, 0, len(tokens)+2)
	if t.BOS != "" {
		indices = append(indices, t.Words[BOSToken])
	}
	for _, w := range tokens {
		idx, ok := t.Words[w]
		if !ok {
			idx = OOVIndex
		}
		indices = append(indices, idx)
	}
	if t.EOS != "" {
		indices = append(indices, t.Words[EOSToken])
	}
	return indices
}
