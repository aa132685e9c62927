// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structures shared across the
// preprocessing pipeline.
package types

import "fmt"

// Config holds all settings for a preprocessing run. It mirrors the
// preprocessing config file loaded through viper.
type Config struct {
	// DataDir is the directory containing the NLI corpus splits
	// (*_train.txt, *_dev.txt, *_test.txt).
	DataDir string `mapstructure:"data_dir" json:"data_dir" yaml:"data_dir"`

	// EmbeddingsFile is the pretrained word-vector file used to build the
	// embedding matrix (GloVe or word2vec text format).
	EmbeddingsFile string `mapstructure:"embeddings_file" json:"embeddings_file" yaml:"embeddings_file"`

	// TargetDir is where artifacts are written. Created if absent.
	TargetDir string `mapstructure:"target_dir" json:"target_dir" yaml:"target_dir"`

	// Lowercase lowercases premises and hypotheses before tokenization.
	Lowercase bool `mapstructure:"lowercase" json:"lowercase" yaml:"lowercase"`

	// IgnorePunctuation replaces ASCII punctuation with spaces before
	// tokenization.
	IgnorePunctuation bool `mapstructure:"ignore_punctuation" json:"ignore_punctuation" yaml:"ignore_punctuation"`

	// NumWords caps the vocabulary at the N most frequent words. Zero keeps
	// every word.
	NumWords int `mapstructure:"num_words" json:"num_words" yaml:"num_words"`

	// Stopwords are dropped from premises and hypotheses during reading.
	Stopwords []string `mapstructure:"stopwords" json:"stopwords,omitempty" yaml:"stopwords,omitempty"`

	// LabelDict maps gold labels to class indices. When empty, a dictionary
	// is built from the distinct labels of the train split, sorted
	// alphabetically.
	LabelDict map[string]int `mapstructure:"labeldict" json:"labeldict,omitempty" yaml:"labeldict,omitempty"`

	// BOS is the beginning-of-sentence symbol. Empty disables it.
	BOS string `mapstructure:"bos" json:"bos,omitempty" yaml:"bos,omitempty"`

	// EOS is the end-of-sentence symbol. Empty disables it.
	EOS string `mapstructure:"eos" json:"eos,omitempty" yaml:"eos,omitempty"`
}

// Validate reports the first missing required field.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if c.EmbeddingsFile == "" {
		return fmt.Errorf("config: embeddings_file is required")
	}
	if c.TargetDir == "" {
		return fmt.Errorf("config: target_dir is required")
	}
	if c.NumWords < 0 {
		return fmt.Errorf("config: num_words must not be negative, got %d", c.NumWords)
	}
	return nil
}
