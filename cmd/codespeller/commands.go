package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/spf13/cobra"
)

// errIssuesFound makes the process exit with status 1
var errIssuesFound = errors.New("spelling issues found")

var (
	checkLanguage    string
	checkComments    bool
	checkStrings     bool
	checkIdentifiers bool
	checkRecursive   bool
	suggest          bool
	identPrefix      int
	dictIgnoreCase   bool

	checkCmd = &cobra.Command{
		Use:   "check [paths...]",
		Short: "Spellcheck source files and directories",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}

	textCmd = &cobra.Command{
		Use:   "text [text...]",
		Short: "Spellcheck free text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runText,
	}

	identCmd = &cobra.Command{
		Use:   "ident [identifier]",
		Short: "Spellcheck a single identifier",
		Args:  cobra.ExactArgs(1),
		RunE:  runIdent,
	}

	dictCmd = &cobra.Command{
		Use:   "dict",
		Short: "Maintain dictionary files",
	}

	dictSortCmd = &cobra.Command{
		Use:   "sort [files...]",
		Short: "Sort and de-duplicate dictionary files in place",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDictSort,
	}
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkLanguage, "language", "l", "", "Language of the files (default: detected from the extension)")
	checkCmd.Flags().BoolVar(&checkComments, "comments", true, "Check comments")
	checkCmd.Flags().BoolVar(&checkStrings, "strings", true, "Check string literals")
	checkCmd.Flags().BoolVar(&checkIdentifiers, "identifiers", true, "Check identifiers")
	checkCmd.Flags().BoolVarP(&checkRecursive, "recursive", "r", true, "Check subdirectories")
	checkCmd.Flags().BoolVar(&suggest, "suggest", false, "Suggest corrections")

	rootCmd.AddCommand(textCmd)
	textCmd.Flags().BoolVar(&suggest, "suggest", false, "Suggest corrections")

	rootCmd.AddCommand(identCmd)
	identCmd.Flags().IntVar(&identPrefix, "prefix", -1, "Length of a prefix that is not checked (default: detected)")
	identCmd.Flags().BoolVar(&suggest, "suggest", false, "Suggest corrections")

	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictSortCmd)
	dictSortCmd.Flags().BoolVar(&dictIgnoreCase, "ignore-case", false, "De-duplicate words that differ only in casing")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var suggester *spellcheck.Suggester
	if suggest {
		suggester = dict.Suggester()
	}
	checker := spellcheck.NewChecker(dict.Data(), cfg.SpellingOptions(), suggester)

	opts := spellcheck.CheckOptions{
		Language:         checkLanguage,
		CheckComments:    checkComments,
		CheckStrings:     checkStrings,
		CheckIdentifiers: checkIdentifiers,
		Recursive:        checkRecursive,
		Suggestions:      suggest,
	}

	var results []spellcheck.SpellCheckResult
	for _, path := range args {
		pathResults, err := checker.CheckPath(cmd.Context(), path, opts)
		if err != nil {
			return err
		}
		results = append(results, pathResults...)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Fprintf(out, "%s:%d:%d: %s %q", r.FilePath, r.LineNumber, r.ColumnStart, r.Type, r.Word)
			if r.Parent != "" {
				fmt.Fprintf(out, " in %s", r.Parent)
			}
			if len(r.Suggestions) > 0 {
				fmt.Fprintf(out, " (%s)", strings.Join(r.Suggestions, ", "))
			}
			fmt.Fprintln(out)
		}
	}

	if len(results) > 0 {
		return errIssuesFound
	}
	return nil
}

func runText(cmd *cobra.Command, args []string) error {
	return analyze(cmd, false, func(c *spelling.Spellchecker) []spelling.SpellingMatch {
		return c.AnalyzeText(strings.Join(args, " "))
	})
}

func runIdent(cmd *cobra.Command, args []string) error {
	identifier := args[0]

	prefix := identPrefix
	if prefix < 0 {
		prefix = spellcheck.IdentifierPrefixLength(identifier)
	}
	if prefix > len(identifier) {
		return fmt.Errorf("prefix %d is longer than %q", prefix, identifier)
	}

	return analyze(cmd, true, func(c *spelling.Spellchecker) []spelling.SpellingMatch {
		return c.AnalyzeIdentifier(identifier, prefix)
	})
}

// flaggedValue is the JSON form of a match printed by text and ident
type flaggedValue struct {
	spelling.SpellingMatch
	Suggestions []string `json:"suggestions,omitempty"`
}

func analyze(cmd *cobra.Command, identifier bool, run func(c *spelling.Spellchecker) []spelling.SpellingMatch) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var suggester *spellcheck.Suggester
	if suggest {
		suggester = dict.Suggester()
	}
	checker := spellcheck.NewChecker(dict.Data(), cfg.SpellingOptions(), suggester)

	matches := run(checker.Spellchecker())

	values := make([]flaggedValue, len(matches))
	for i, m := range matches {
		values[i] = flaggedValue{SpellingMatch: m, Suggestions: checker.Suggest(m.Value, identifier)}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := writeJSON(out, values); err != nil {
			return err
		}
	} else {
		for _, v := range values {
			fmt.Fprintf(out, "%d: %s", v.Index, v.Value)
			if v.HasParent() {
				fmt.Fprintf(out, " in %s", v.Parent)
			}
			if len(v.Suggestions) > 0 {
				fmt.Fprintf(out, " (%s)", strings.Join(v.Suggestions, ", "))
			}
			fmt.Fprintln(out)
		}
	}

	if len(matches) > 0 {
		return errIssuesFound
	}
	return nil
}

func runDictSort(cmd *cobra.Command, args []string) error {
	cmp := spelling.OrdinalComparer
	if dictIgnoreCase {
		cmp = spelling.FoldComparer
	}

	for _, path := range args {
		result, err := spelling.LoadFile(path, spelling.LoadOptions{IgnoreCase: dictIgnoreCase})
		if err != nil {
			return err
		}

		lines, err := spelling.SaveDictionary(path, result, cmp)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sorted %s (%d lines)\n", path, lines)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
