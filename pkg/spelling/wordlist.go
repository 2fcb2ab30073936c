package spelling

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

// WordList is one partition of a dictionary: words, non-words and
// multi-word sequences, all compared with the same Comparer.
// A WordList is immutable; the Add methods return a new list.
//
// Only values matching IsStandaloneWord are words; any other value given as
// a word is kept as a non-word, the way the loader classifies dictionary lines.
type WordList struct {
	cmp       Comparer
	words     *valueSet
	nonWords  *valueSet
	sequences map[string][]WordSequence // keyed by the comparer key of the first word

	nonWordIndex atomic.Pointer[map[rune][]string]
}

// NewWordList creates a word list. Sequences with fewer than two words are ignored.
func NewWordList(cmp Comparer, words, nonWords []string, sequences []WordSequence) *WordList {
	if cmp == nil {
		cmp = FoldComparer
	}

	words, moved := splitStandalone(words)
	nonWords = append(append([]string(nil), nonWords...), moved...)

	grouped := make(map[string][]WordSequence)
	for _, seq := range sequences {
		if seq.Len() < 2 {
			continue
		}
		k := cmp.Key(seq.First())
		grouped[k] = append(grouped[k], seq)
	}

	// longest sequences first
	for k := range grouped {
		seqs := grouped[k]
		sort.SliceStable(seqs, func(i, j int) bool {
			return seqs[i].Len() > seqs[j].Len()
		})
	}

	return &WordList{
		cmp:       cmp,
		words:     newValueSet(cmp, words),
		nonWords:  newValueSet(cmp, nonWords),
		sequences: grouped,
	}
}

// EmptyWordList returns a list without values
func EmptyWordList(cmp Comparer) *WordList {
	return NewWordList(cmp, nil, nil, nil)
}

// Comparer returns the comparer of the list
func (l *WordList) Comparer() Comparer {
	return l.cmp
}

// Contains reports whether value is one of the words. Non-words and sequences are not consulted.
func (l *WordList) Contains(value string) bool {
	return l.words.Contains(value)
}

// ContainsNonWord reports whether value is one of the non-words
func (l *WordList) ContainsNonWord(value string) bool {
	return l.nonWords.Contains(value)
}

// Len returns the number of words
func (l *WordList) Len() int {
	return l.words.Len()
}

// Words returns the words in sorted order
func (l *WordList) Words() []string {
	return l.words.Values()
}

// NonWords returns the non-words in sorted order
func (l *WordList) NonWords() []string {
	return l.nonWords.Values()
}

// Sequences returns the sequences starting with first, longest first
func (l *WordList) Sequences(first string) []WordSequence {
	return l.sequences[l.cmp.Key(first)]
}

// SequenceCount returns the number of sequences
func (l *WordList) SequenceCount() int {
	n := 0
	for _, seqs := range l.sequences {
		n += len(seqs)
	}
	return n
}

// AllSequences returns every sequence ordered by its text
func (l *WordList) AllSequences() []WordSequence {
	var all []WordSequence
	for _, seqs := range l.sequences {
		all = append(all, seqs...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].String() < all[j].String()
	})
	return all
}

// AddValue returns a list that also contains value as a word
func (l *WordList) AddValue(value string) *WordList {
	return l.AddValues(value)
}

// AddValues returns a list that also contains values. Standalone words are
// added as words, other values as non-words.
func (l *WordList) AddValues(values ...string) *WordList {
	words, others := splitStandalone(values)

	nextWords := l.words.With(words...)
	nextNonWords := l.nonWords.With(others...)
	if nextWords == l.words && nextNonWords == l.nonWords {
		return l
	}

	next := &WordList{
		cmp:       l.cmp,
		words:     nextWords,
		nonWords:  nextNonWords,
		sequences: l.sequences,
	}
	if nextNonWords == l.nonWords {
		next.nonWordIndex.Store(l.nonWordIndex.Load())
	}
	return next
}

// splitStandalone separates standalone words from the other values
func splitStandalone(values []string) (words, others []string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if IsStandaloneWord(v) {
			words = append(words, v)
		} else {
			others = append(others, v)
		}
	}
	return words, others
}

// CoversNonWord reports whether an occurrence of a non-word in s starts at or
// before offset and ends at or after offset+length.
func (l *WordList) CoversNonWord(s string, offset, length int) bool {
	if l.nonWords.Len() == 0 {
		return false
	}

	index := l.indexNonWords()
	foldCase := l.cmp != OrdinalComparer
	end := offset + length

	for p, r := range s {
		if p > offset {
			break
		}
		for _, nonWord := range index[l.indexRune(r)] {
			n := len(nonWord)
			if p+n < end || p+n > len(s) {
				continue
			}
			if equalAt(s[p:p+n], nonWord, foldCase) {
				return true
			}
		}
	}

	return false
}

// indexNonWords returns the non-words grouped by their first rune. The index
// is built on first use.
func (l *WordList) indexNonWords() map[rune][]string {
	if index := l.nonWordIndex.Load(); index != nil {
		return *index
	}

	index := make(map[rune][]string)
	l.nonWords.Each(func(nonWord string) bool {
		r, _ := utf8.DecodeRuneInString(nonWord)
		k := l.indexRune(r)
		index[k] = append(index[k], nonWord)
		return true
	})

	if l.nonWordIndex.CompareAndSwap(nil, &index) {
		return index
	}
	return *l.nonWordIndex.Load()
}

func (l *WordList) indexRune(r rune) rune {
	if l.cmp == OrdinalComparer {
		return r
	}
	return unicode.ToLower(r)
}

// Intersect returns a list of the words that are also words of other
func (l *WordList) Intersect(other *WordList) *WordList {
	var words []string
	l.words.Each(func(v string) bool {
		if other.Contains(v) {
			words = append(words, v)
		}
		return true
	})
	return NewWordList(l.cmp, words, nil, nil)
}

// Except returns a list of the words that are not words of other
func (l *WordList) Except(other *WordList) *WordList {
	var words []string
	l.words.Each(func(v string) bool {
		if !other.Contains(v) {
			words = append(words, v)
		}
		return true
	})
	return NewWordList(l.cmp, words, nil, nil)
}

// Values returns the dictionary lines of the list: words, non-words and
// sequences, with colons escaped so that the lines load back unchanged.
func (l *WordList) Values() []string {
	values := make([]string, 0, l.words.Len()+l.nonWords.Len())
	values = append(values, l.words.Values()...)
	values = append(values, l.nonWords.Values()...)
	for _, seq := range l.AllSequences() {
		values = append(values, seq.String())
	}

	for i, v := range values {
		values[i] = escapeColons(v)
	}
	return values
}

// Save writes the values of the list to path, one per line, sorted and
// de-duplicated. With merge set, the lines already in the file are kept.
func (l *WordList) Save(path string, merge bool) error {
	values := l.Values()

	if merge {
		existing, err := readLines(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		values = append(values, existing...)
	}

	return writeLines(path, normalizeLines(values, l.cmp))
}

// SaveDictionary writes the lists of a load result to path as one dictionary
// file: words, non-words, sequences and fixes, sorted and de-duplicated under
// cmp. It returns the number of lines written.
func SaveDictionary(path string, result LoadResult, cmp Comparer) (int, error) {
	var lines []string
	for _, list := range []*WordList{result.List, result.CaseSensitiveList} {
		if list != nil {
			lines = append(lines, list.Values()...)
		}
	}
	if result.Fixes != nil {
		lines = append(lines, result.Fixes.Lines()...)
	}

	lines = normalizeLines(lines, cmp)
	return len(lines), writeLines(path, lines)
}

// normalizeLines trims, drops empty lines and de-duplicates under cmp, sorted
func normalizeLines(lines []string, cmp Comparer) []string {
	seen := make(map[string]struct{}, len(lines))
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		k := cmp.Key(line)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, line)
	}

	sortValues(result, cmp)
	return result
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	return nil
}

func escapeColons(value string) string {
	return strings.ReplaceAll(value, ":", "::")
}

func unescapeColons(value string) string {
	return strings.ReplaceAll(value, "::", ":")
}
