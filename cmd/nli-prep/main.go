// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nli-prep CLI, a one-shot batch
// job that prepares an NLI corpus and pretrained word embeddings for model
// training.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nli-prep/internal/pipeline"
	"github.com/pdiddy/nli-prep/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the single command of the nli-prep CLI. The whole surface is
// one config file; everything else is driven by its contents.
var rootCmd = &cobra.Command{
	Use:     "nli-prep",
	Version: version,
	Short:   "Preprocess an NLI corpus and word embeddings for training",
	Long: `nli-prep locates the train, dev and test files of an NLI corpus, builds a
word dictionary from the train split, converts premise and hypothesis tokens
and labels to integer indices, builds an embedding matrix from pretrained
word vectors, and serializes the results for a downstream trainer.

All settings come from a YAML config file; see config/nli-prep.yaml for a
template.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg types.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		p := pipeline.New(cfg, os.Stdout)
		return p.Run(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nli-prep.yaml or ~/.config/nli-prep/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nli-prep")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nli-prep"))
		}
	}

	viper.SetEnvPrefix("NLI_PREP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
