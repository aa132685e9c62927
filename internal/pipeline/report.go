// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nli-prep/internal/embeddings"
	"github.com/pdiddy/nli-prep/pkg/types"
)

// Report is the on-disk YAML summary of a preprocessing run: the options
// used, per-split statistics and embedding coverage.
type Report struct {
	Config     types.Config          `yaml:"config"`
	Splits     []SplitReport         `yaml:"splits"`
	VocabSize  int                   `yaml:"vocab_size"`
	Embeddings embeddings.BuildStats `yaml:"embeddings"`
	Timestamp  time.Time             `yaml:"timestamp"`
}

// SplitReport summarizes one processed split.
type SplitReport struct {
	Name           string `yaml:"name"`
	SourceFile     string `yaml:"source_file"`
	Pairs          int    `yaml:"pairs"`
	SkippedNoLabel int    `yaml:"skipped_no_label"`
	SkippedShort   int    `yaml:"skipped_short"`
	DroppedLabels  int    `yaml:"dropped_labels"`
}

// WriteReport saves the run report to a YAML file.
func WriteReport(path string, r *Report) error {
	r.Timestamp = time.Now()
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a previously written run report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}
