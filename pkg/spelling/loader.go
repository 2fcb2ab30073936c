package spelling

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidPath is returned when a dictionary path is neither a file nor a directory
var ErrInvalidPath = errors.New("dictionary path is neither a file nor a directory")

// LoadOptions configures dictionary loading
type LoadOptions struct {
	// MinWordLength drops plain words shorter than this; 0 disables the check
	MinWordLength int
	// MaxWordLength drops plain words longer than this; 0 disables the check
	MaxWordLength int
	// IgnoreCase puts every entry into the case-insensitive list
	IgnoreCase bool
}

// LoadResult holds the lists produced by a load
type LoadResult struct {
	List              *WordList
	CaseSensitiveList *WordList
	Fixes             *FixList
}

// loadState accumulates the entries of one or more dictionary files
type loadState struct {
	opts                   LoadOptions
	words                  []string
	nonWords               []string
	sequences              []WordSequence
	caseSensitiveWords     []string
	caseSensitiveNonWords  []string
	caseSensitiveSequences []WordSequence
	fixes                  map[string][]string
	fixKeys                []string // insertion order of fixes
}

func newLoadState(opts LoadOptions) *loadState {
	return &loadState{opts: opts, fixes: make(map[string][]string)}
}

// Load reads dictionaries from paths. A path may be a file or a directory,
// which is read recursively. Every path must exist; otherwise nothing is loaded.
func Load(paths []string, opts LoadOptions) (LoadResult, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return LoadResult{}, err
	}

	state := newLoadState(opts)
	for _, file := range files {
		if err := state.loadFile(file); err != nil {
			return LoadResult{}, err
		}
	}

	log.Printf("[Dictionary] Loaded %d files: %d words, %d case-sensitive words, %d fixes",
		len(files), len(state.words), len(state.caseSensitiveWords), len(state.fixes))

	return state.result(true), nil
}

// LoadParallel is like Load but reads the files concurrently
func LoadParallel(ctx context.Context, paths []string, opts LoadOptions) (LoadResult, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return LoadResult{}, err
	}

	state := newLoadState(opts)
	if err := state.loadFiles(ctx, files); err != nil {
		return LoadResult{}, err
	}

	return state.result(true), nil
}

// LoadWithFS reads every file under root in fsys, then the files at paths,
// and prunes the fixes once over all of them.
func LoadWithFS(ctx context.Context, fsys fs.FS, root string, paths []string, opts LoadOptions) (LoadResult, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return LoadResult{}, err
	}

	state := newLoadState(opts)
	if err := state.readFS(fsys, root); err != nil {
		return LoadResult{}, err
	}
	if err := state.loadFiles(ctx, files); err != nil {
		return LoadResult{}, err
	}

	log.Printf("[Dictionary] Loaded %s and %d files: %d words, %d case-sensitive words, %d fixes",
		root, len(files), len(state.words), len(state.caseSensitiveWords), len(state.fixes))

	return state.result(true), nil
}

// LoadFile reads a single dictionary file. Fixes are not pruned.
func LoadFile(path string, opts LoadOptions) (LoadResult, error) {
	state := newLoadState(opts)
	if err := state.loadFile(path); err != nil {
		return LoadResult{}, err
	}
	return state.result(false), nil
}

// LoadFS reads every file under root in fsys
func LoadFS(fsys fs.FS, root string, opts LoadOptions) (LoadResult, error) {
	state := newLoadState(opts)
	if err := state.readFS(fsys, root); err != nil {
		return LoadResult{}, err
	}
	return state.result(true), nil
}

// LoadReader reads dictionary lines from r
func LoadReader(r io.Reader, opts LoadOptions) (LoadResult, error) {
	state := newLoadState(opts)
	if err := state.read(r); err != nil {
		return LoadResult{}, err
	}
	return state.result(true), nil
}

// collectFiles expands paths into a list of files
func collectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
			}
			return nil, fmt.Errorf("error accessing dictionary path %s: %w", path, err)
		}

		switch {
		case info.Mode().IsRegular():
			files = append(files, path)
		case info.IsDir():
			err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.Type().IsRegular() {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("error walking dictionary directory %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
	}

	return files, nil
}

// loadFiles reads files concurrently and appends their entries in file order,
// so the result does not depend on scheduling.
func (s *loadState) loadFiles(ctx context.Context, files []string) error {
	states := make([]*loadState, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			state := newLoadState(s.opts)
			if err := state.loadFile(file); err != nil {
				return err
			}
			states[i] = state
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, state := range states {
		s.merge(state)
	}
	return nil
}

func (s *loadState) readFS(fsys fs.FS, root string) error {
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		return s.read(file)
	})
	if err != nil {
		return fmt.Errorf("error loading dictionary %s: %w", root, err)
	}
	return nil
}

func (s *loadState) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dictionary %s: %w", path, err)
	}
	defer file.Close()

	if err := s.read(file); err != nil {
		return fmt.Errorf("error reading dictionary %s: %w", path, err)
	}
	return nil
}

func (s *loadState) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		s.addLine(scanner.Text())
	}

	return scanner.Err()
}

// addLine classifies one dictionary line as a fix, a sequence or a single entry
func (s *loadState) addLine(line string) {
	line = stripComment(strings.TrimSpace(line))
	if line == "" {
		return
	}

	if sep := fixSeparator(line); sep >= 0 {
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if key == "" || value == "" || !s.lengthInRange(key) {
			return
		}
		s.addFix(key, value)
		return
	}

	value := unescapeColons(line)

	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		seq := NewWordSequence(strings.Fields(value)...)
		if s.isCaseSensitive(value) {
			s.caseSensitiveSequences = append(s.caseSensitiveSequences, seq)
		} else {
			s.sequences = append(s.sequences, seq)
		}
		return
	}

	caseSensitive := s.isCaseSensitive(value)

	if !IsStandaloneWord(value) {
		if caseSensitive {
			s.caseSensitiveNonWords = append(s.caseSensitiveNonWords, value)
		} else {
			s.nonWords = append(s.nonWords, value)
		}
		return
	}

	if !s.lengthInRange(value) {
		return
	}

	if caseSensitive {
		s.caseSensitiveWords = append(s.caseSensitiveWords, value)
	} else {
		s.words = append(s.words, value)
	}
}

func (s *loadState) addFix(key, value string) {
	values, ok := s.fixes[key]
	if !ok {
		s.fixKeys = append(s.fixKeys, key)
	}
	for _, v := range values {
		if v == value {
			return
		}
	}
	s.fixes[key] = append(values, value)
}

func (s *loadState) isCaseSensitive(value string) bool {
	return !s.opts.IgnoreCase && !isLowerValue(value)
}

func (s *loadState) lengthInRange(value string) bool {
	n := runeLen(value)
	if s.opts.MinWordLength > 0 && n < s.opts.MinWordLength {
		return false
	}
	if s.opts.MaxWordLength > 0 && n > s.opts.MaxWordLength {
		return false
	}
	return true
}

func (s *loadState) merge(other *loadState) {
	s.words = append(s.words, other.words...)
	s.nonWords = append(s.nonWords, other.nonWords...)
	s.sequences = append(s.sequences, other.sequences...)
	s.caseSensitiveWords = append(s.caseSensitiveWords, other.caseSensitiveWords...)
	s.caseSensitiveNonWords = append(s.caseSensitiveNonWords, other.caseSensitiveNonWords...)
	s.caseSensitiveSequences = append(s.caseSensitiveSequences, other.caseSensitiveSequences...)

	for _, key := range other.fixKeys {
		for _, value := range other.fixes[key] {
			s.addFix(key, value)
		}
	}
}

// result builds the word lists. With prune set, fixes whose key is a known
// word are dropped, and so are fixes whose key is exactly the correction of
// another fix.
func (s *loadState) result(prune bool) LoadResult {
	list := NewWordList(FoldComparer, s.words, s.nonWords, s.sequences)
	caseSensitiveList := NewWordList(OrdinalComparer, s.caseSensitiveWords, s.caseSensitiveNonWords, s.caseSensitiveSequences)

	fixes := s.fixes
	if prune {
		fixes = pruneFixes(s.fixKeys, s.fixes, list, caseSensitiveList)
	}

	return LoadResult{
		List:              list,
		CaseSensitiveList: caseSensitiveList,
		Fixes:             NewFixList(fixes),
	}
}

func pruneFixes(keys []string, fixes map[string][]string, list, caseSensitiveList *WordList) map[string][]string {
	pruned := make(map[string][]string, len(fixes))
	for _, key := range keys {
		if list.Contains(key) || caseSensitiveList.Contains(key) {
			continue
		}
		pruned[key] = fixes[key]
	}

	corrections := make(map[string]struct{})
	for _, values := range pruned {
		for _, v := range values {
			corrections[v] = struct{}{}
		}
	}

	removed := 0
	for key := range pruned {
		if _, ok := corrections[key]; ok {
			delete(pruned, key)
			removed++
		}
	}

	if dropped := len(fixes) - len(pruned); dropped > 0 {
		log.Printf("[Dictionary] Pruned %d fixes (%d were corrections of other fixes)", dropped, removed)
	}

	return pruned
}

// fixSeparator returns the index of the first single ':' in line, or -1.
// A "::" is an escaped colon and does not separate.
func fixSeparator(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ':' {
			continue
		}
		if i+1 < len(line) && line[i+1] == ':' {
			i++
			continue
		}
		return i
	}
	return -1
}

// stripComment removes a '#' comment that starts the line or follows whitespace
func stripComment(line string) string {
	if strings.HasPrefix(line, "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

// Merge returns a result holding the entries of r and other. The merged fixes
// are pruned against the merged lists, so a fix key that is a word or a
// correction in either result is dropped.
func (r LoadResult) Merge(other LoadResult) LoadResult {
	list := mergeWordLists(r.List, other.List, FoldComparer)
	caseSensitiveList := mergeWordLists(r.CaseSensitiveList, other.CaseSensitiveList, OrdinalComparer)
	merged := mergeFixLists(r.Fixes, other.Fixes)

	keys := merged.Keys()
	fixes := make(map[string][]string, len(keys))
	for _, key := range keys {
		fixes[key], _ = merged.TryGetValue(key)
	}

	return LoadResult{
		List:              list,
		CaseSensitiveList: caseSensitiveList,
		Fixes:             NewFixList(pruneFixes(keys, fixes, list, caseSensitiveList)),
	}
}

func mergeWordLists(a, b *WordList, cmp Comparer) *WordList {
	if a == nil {
		a = EmptyWordList(cmp)
	}
	if b == nil {
		return a
	}

	return NewWordList(
		a.Comparer(),
		append(a.Words(), b.Words()...),
		append(a.NonWords(), b.NonWords()...),
		append(a.AllSequences(), b.AllSequences()...),
	)
}

func mergeFixLists(a, b *FixList) *FixList {
	if a == nil {
		a = EmptyFixList()
	}
	if b == nil {
		return a
	}

	merged := a
	for _, key := range b.Keys() {
		values, _ := b.TryGetValue(key)
		for _, v := range values {
			merged = merged.Add(key, v)
		}
	}
	return merged
}
