// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the preprocessing stages: read the corpus splits,
// build the dictionaries from the train split, transform every split to
// indices, build the embedding matrix, and serialize the artifacts.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/nli-prep/internal/catalog"
	"github.com/pdiddy/nli-prep/internal/corpus"
	"github.com/pdiddy/nli-prep/internal/embeddings"
	"github.com/pdiddy/nli-prep/internal/vocab"
	"github.com/pdiddy/nli-prep/pkg/types"
)

// Artifact filenames under the target directory.
const (
	WordDictFile     = "worddict.gob"
	WordDictJSONFile = "worddict.json"
	TrainDataFile    = "train_data.gob"
	DevDataFile      = "dev_data.gob"
	TestDataFile     = "test_data.gob"
	EmbeddingsFile   = "embeddings.gob"
	ReportFile       = "report.yaml"
)

// Pipeline runs the preprocessing stages for one configuration, writing
// per-stage progress to out.
type Pipeline struct {
	cfg types.Config
	out io.Writer
}

// New returns a Pipeline for cfg that reports progress to out.
func New(cfg types.Config, out io.Writer) *Pipeline {
	return &Pipeline{cfg: cfg, out: out}
}

// Run executes the full pipeline and writes all artifacts, the run report
// and the catalog entry under the target directory.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	splits, err := corpus.FindSplits(p.cfg.DataDir)
	if err != nil {
		return err
	}

	cat, err := catalog.Open(p.cfg.TargetDir)
	if err != nil {
		return err
	}
	defer cat.Close()

	runID, err := cat.BeginRun(ctx, p.cfg)
	if err != nil {
		return err
	}

	readOpts := corpus.Options{
		Lowercase:         p.cfg.Lowercase,
		IgnorePunctuation: p.cfg.IgnorePunctuation,
		Stopwords:         p.cfg.Stopwords,
	}

	// Train split: the dictionaries are built here and reused for dev
	// and test.
	p.banner("Preprocessing train set")
	p.step("Reading data...")
	train, err := corpus.Read(splits.Train, readOpts)
	if err != nil {
		return fmt.Errorf("train split: %w", err)
	}

	p.step("Computing worddict and saving it...")
	dict, counts := vocab.BuildWordDict(train, vocab.Options{
		NumWords: p.cfg.NumWords,
		BOS:      p.cfg.BOS,
		EOS:      p.cfg.EOS,
	})
	labels := p.cfg.LabelDict
	if len(labels) == 0 {
		labels = vocab.BuildLabelDict(train.Labels)
	}
	if err := WriteArtifact(p.target(WordDictFile), dict); err != nil {
		return err
	}
	if err := writeWordDictJSON(p.target(WordDictJSONFile), dict); err != nil {
		return err
	}
	if err := cat.ReplaceWords(ctx, dict, counts); err != nil {
		return err
	}

	transformer := &vocab.Transformer{
		Words:  dict,
		Labels: labels,
		BOS:    p.cfg.BOS,
		EOS:    p.cfg.EOS,
	}

	report := &Report{Config: p.cfg}

	trainStats, err := p.transformSplit(ctx, cat, runID, transformer, "train", splits.Train, train, TrainDataFile)
	if err != nil {
		return err
	}
	report.Splits = append(report.Splits, trainStats)

	// Dev and test reuse the train dictionaries.
	for _, s := range []struct {
		name     string
		banner   string
		source   string
		artifact string
	}{
		{"dev", "Preprocessing dev set", splits.Dev, DevDataFile},
		{"test", "Preprocessing test set", splits.Test, TestDataFile},
	} {
		p.banner(s.banner)
		p.step("Reading data...")
		data, err := corpus.Read(s.source, readOpts)
		if err != nil {
			return fmt.Errorf("%s split: %w", s.name, err)
		}
		stats, err := p.transformSplit(ctx, cat, runID, transformer, s.name, s.source, data, s.artifact)
		if err != nil {
			return err
		}
		report.Splits = append(report.Splits, stats)
	}

	// Embedding matrix for the train vocabulary.
	p.banner("Preprocessing embeddings")
	p.step("Building embedding matrix and saving it...")
	matrix, embedStats, err := embeddings.BuildMatrix(p.cfg.EmbeddingsFile, dict)
	if err != nil {
		return err
	}
	p.step(fmt.Sprintf("%d words with no pretrained vector were initialized randomly", embedStats.Missing))
	if err := WriteArtifact(p.target(EmbeddingsFile), matrix); err != nil {
		return err
	}

	report.VocabSize = len(dict)
	report.Embeddings = embedStats
	if err := WriteReport(p.target(ReportFile), report); err != nil {
		return err
	}

	if err := cat.FinishRun(ctx, runID, len(dict), embedStats.Dim); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nPreprocessing complete: %d words, %d-dimensional embeddings, artifacts in %s\n",
		len(dict), embedStats.Dim, p.cfg.TargetDir)
	return nil
}

// transformSplit converts one split to indices, persists the artifact and
// records the split in the catalog.
func (p *Pipeline) transformSplit(ctx context.Context, cat *catalog.Catalog, runID int64,
	t *vocab.Transformer, name, source string, data *corpus.Data, artifact string) (SplitReport, error) {

	p.step("Transforming words in premises and hypotheses to indices...")
	indexed := t.Transform(data)

	p.step("Saving result...")
	if err := WriteArtifact(p.target(artifact), indexed); err != nil {
		return SplitReport{}, err
	}

	stats := SplitReport{
		Name:           name,
		SourceFile:     filepath.Base(source),
		Pairs:          len(indexed.IDs),
		SkippedNoLabel: data.SkippedNoLabel,
		SkippedShort:   data.SkippedShort,
		DroppedLabels:  indexed.DroppedLabels,
	}
	err := cat.RecordSplit(ctx, runID, catalog.SplitStats{
		Name:           name,
		SourceFile:     stats.SourceFile,
		Pairs:          stats.Pairs,
		SkippedNoLabel: stats.SkippedNoLabel,
		SkippedShort:   stats.SkippedShort,
		DroppedLabels:  stats.DroppedLabels,
	})
	if err != nil {
		return SplitReport{}, err
	}
	return stats, nil
}

func (p *Pipeline) target(name string) string {
	return filepath.Join(p.cfg.TargetDir, name)
}

func (p *Pipeline) banner(title string) {
	bar := strings.Repeat("=", 20)
	fmt.Fprintf(p.out, "%s %s %s\n", bar, title, bar)
}

func (p *Pipeline) step(msg string) {
	fmt.Fprintf(p.out, "\t* %s\n", msg)
}
