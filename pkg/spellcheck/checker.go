package spellcheck

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFiles bounds the files checked at the same time in a directory
const maxConcurrentFiles = 8

// Checker spellchecks source files against one dictionary snapshot
type Checker struct {
	speller   *spelling.Spellchecker
	suggester *Suggester
	checked   atomic.Int64
}

// NewChecker creates a checker. suggester may be nil, in which case no suggestions are made.
func NewChecker(data *spelling.SpellingData, opts spelling.Options, suggester *Suggester) *Checker {
	return &Checker{
		speller:   spelling.NewSpellchecker(data, opts),
		suggester: suggester,
	}
}

// Spellchecker returns the underlying spellchecker
func (c *Checker) Spellchecker() *spelling.Spellchecker {
	return c.speller
}

// Suggest returns corrections for a flagged value
func (c *Checker) Suggest(value string, identifier bool) []string {
	if c.suggester == nil {
		return nil
	}
	return c.suggester.Suggest(c.speller.Data(), value, identifier)
}

// FilesChecked returns the number of files checked so far
func (c *Checker) FilesChecked() int {
	return int(c.checked.Load())
}

// CheckPath checks a file or a directory
func (c *Checker) CheckPath(ctx context.Context, path string, opts CheckOptions) ([]SpellCheckResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return c.CheckDirectory(ctx, path, opts)
	}
	return c.CheckFile(path, opts)
}

// CheckFile performs spell checking on a single file
func (c *Checker) CheckFile(filePath string, opts CheckOptions) ([]SpellCheckResult, error) {
	lang, err := resolveLanguage(filePath, opts.Language)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return c.CheckSource(filePath, string(content), lang, opts), nil
}

// CheckDirectory checks the supported files of a directory concurrently.
// Results are ordered by file path and position.
func (c *Checker) CheckDirectory(ctx context.Context, dirPath string, opts CheckOptions) ([]SpellCheckResult, error) {
	var files []string

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories if not recursive
		if d.IsDir() {
			if path != dirPath && (!opts.Recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if _, err := resolveLanguage(path, opts.Language); err == nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	var (
		mu      sync.Mutex
		results []SpellCheckResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fileResults, err := c.CheckFile(file, opts)
			if err != nil {
				log.Printf("[SpellCheck] Error checking file %s: %v", file, err)
				return nil
			}

			mu.Lock()
			results = append(results, fileResults...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortResults(results)
	return results, nil
}

// CheckSource checks the content of a file written in lang
func (c *Checker) CheckSource(filePath, content string, lang Language, opts CheckOptions) []SpellCheckResult {
	c.checked.Add(1)
	lines := newLineIndex(content)

	var results []SpellCheckResult
	identifiers := make(map[string][]spelling.SpellingMatch)

	for _, segment := range Extract(content, lang) {
		var matches []spelling.SpellingMatch

		switch segment.Kind {
		case KindComment:
			if !opts.CheckComments {
				continue
			}
			matches = c.speller.AnalyzeText(segment.Text)
		case KindString:
			if !opts.CheckStrings {
				continue
			}
			matches = c.speller.AnalyzeText(segment.Text)
		case KindIdentifier:
			if !opts.CheckIdentifiers {
				continue
			}
			cached, ok := identifiers[segment.Text]
			if !ok {
				cached = c.speller.AnalyzeIdentifier(segment.Text, IdentifierPrefixLength(segment.Text))
				identifiers[segment.Text] = cached
			}
			matches = cached
		}

		for _, m := range matches {
			offset := segment.Offset + m.Index
			line, column := lines.position(offset)

			result := SpellCheckResult{
				FilePath:    filePath,
				LineNumber:  line,
				ColumnStart: column,
				ColumnEnd:   column + len(m.Value),
				Word:        m.Value,
				Parent:      m.Parent,
				Context:     strings.TrimSpace(lines.line(line)),
				Type:        segment.Kind,
			}
			if opts.Suggestions {
				result.Suggestions = c.Suggest(m.Value, segment.Kind == KindIdentifier)
			}

			results = append(results, result)
		}
	}

	return results
}

func resolveLanguage(filePath, language string) (Language, error) {
	if language != "" {
		lang, found := GetLanguageByName(language)
		if !found {
			return Language{}, fmt.Errorf("unsupported language: %s", language)
		}
		return lang, nil
	}

	ext := filepath.Ext(filePath)
	lang, found := GetLanguageByExtension(ext)
	if !found {
		return Language{}, fmt.Errorf("unsupported file extension: %s", ext)
	}
	return lang, nil
}

func sortResults(results []SpellCheckResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.ColumnStart < b.ColumnStart
	})
}

// lineIndex maps byte offsets to 1-based line and column numbers
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

func (l *lineIndex) position(offset int) (int, int) {
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	return line + 1, offset - l.starts[line] + 1
}

func (l *lineIndex) line(number int) string {
	start := l.starts[number-1]
	end := len(l.content)
	if number < len(l.starts) {
		end = l.starts[number] - 1
	}
	return strings.TrimRight(l.content[start:end], "\r")
}
