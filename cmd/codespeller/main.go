package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Code-Monger/CodeSpeller/pkg/config"
	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/spf13/cobra"
)

var (
	dictPaths     []string
	configFile    string
	minWordLength int
	maxWordLength int
	splitHyphens  bool
	jsonOutput    bool

	rootCmd = &cobra.Command{
		Use:           "codespeller",
		Short:         "Spellchecks source code, identifiers and text",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&dictPaths, "dict", nil, "Dictionary files or directories loaded on top of the embedded dictionary")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().IntVar(&minWordLength, "min", 0, "Minimal length of a flagged word")
	rootCmd.PersistentFlags().IntVar(&maxWordLength, "max", 0, "Maximal length of a flagged word")
	rootCmd.PersistentFlags().BoolVar(&splitHyphens, "split-hyphens", true, "Split hyphenated words in comments and text")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// loadConfig merges the environment, the config file and the command-line flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := *config.GetConfig()

	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dict") {
		cfg.DictionaryPaths = dictPaths
	}
	if flags.Changed("min") {
		cfg.MinWordLength = minWordLength
	}
	if flags.Changed("max") {
		cfg.MaxWordLength = maxWordLength
	}
	if flags.Changed("split-hyphens") {
		cfg.SplitHyphens = splitHyphens
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDictionary loads the embedded dictionary and the configured files
func loadDictionary(ctx context.Context, cfg *config.Config) (*spellcheck.Dictionary, error) {
	dict := spellcheck.NewDictionary(cfg.DictionaryPaths, spelling.LoadOptions{})
	if err := dict.Load(ctx); err != nil {
		return nil, err
	}
	return dict, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIssuesFound) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
