package spelling

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// FixList maps misspellings to their corrections. Keys are compared case-insensitively.
// A FixList is immutable; Add returns a new list.
type FixList struct {
	items map[string]fixEntry
}

type fixEntry struct {
	key    string
	values mapset.Set[string]
}

// NewFixList creates a fix list from a misspelling -> corrections map
func NewFixList(fixes map[string][]string) *FixList {
	items := make(map[string]fixEntry, len(fixes))

	keys := make([]string, 0, len(fixes))
	for key := range fixes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "" {
			continue
		}
		k := FoldComparer.Key(key)
		entry, ok := items[k]
		if !ok {
			entry = fixEntry{key: key, values: mapset.NewThreadUnsafeSet[string]()}
			items[k] = entry
		}
		for _, v := range fixes[key] {
			if v != "" {
				entry.values.Add(v)
			}
		}
		if entry.values.Cardinality() == 0 {
			delete(items, k)
		}
	}

	return &FixList{items: items}
}

// EmptyFixList returns a fix list without entries
func EmptyFixList() *FixList {
	return &FixList{items: map[string]fixEntry{}}
}

// Len returns the number of misspellings
func (f *FixList) Len() int {
	return len(f.items)
}

// Contains reports whether key is a known misspelling
func (f *FixList) Contains(key string) bool {
	_, ok := f.items[FoldComparer.Key(key)]
	return ok
}

// TryGetKey returns the misspelling stored for key, which may differ in casing
func (f *FixList) TryGetKey(key string) (string, bool) {
	entry, ok := f.items[FoldComparer.Key(key)]
	return entry.key, ok
}

// TryGetValue returns the sorted corrections for key
func (f *FixList) TryGetValue(key string) ([]string, bool) {
	entry, ok := f.items[FoldComparer.Key(key)]
	if !ok {
		return nil, false
	}
	values := entry.values.ToSlice()
	sort.Strings(values)
	return values, true
}

// Keys returns the misspellings in sorted order
func (f *FixList) Keys() []string {
	keys := make([]string, 0, len(f.items))
	for _, entry := range f.items {
		keys = append(keys, entry.key)
	}
	sort.Strings(keys)
	return keys
}

// Add returns a list in which value is one of the corrections of key
func (f *FixList) Add(key, value string) *FixList {
	if key == "" || value == "" {
		return f
	}

	k := FoldComparer.Key(key)
	entry, ok := f.items[k]
	if ok && entry.values.Contains(value) {
		return f
	}

	items := make(map[string]fixEntry, len(f.items)+1)
	for ek, e := range f.items {
		items[ek] = e
	}

	if ok {
		values := entry.values.Clone()
		values.Add(value)
		items[k] = fixEntry{key: entry.key, values: values}
	} else {
		items[k] = fixEntry{key: key, values: mapset.NewThreadUnsafeSet(value)}
	}

	return &FixList{items: items}
}

// Lines returns the list as "misspelling:correction" lines, sorted
func (f *FixList) Lines() []string {
	var lines []string
	for _, key := range f.Keys() {
		values, _ := f.TryGetValue(key)
		for _, v := range values {
			lines = append(lines, key+":"+v)
		}
	}
	return lines
}

// Save writes the fixes to path. With merge set, the lines already in the file are kept.
func (f *FixList) Save(path string, merge bool) error {
	lines := f.Lines()

	if merge {
		existing, err := readLines(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		lines = append(lines, existing...)
	}

	seen := make(map[string]struct{}, len(lines))
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		result = append(result, line)
	}
	sortValues(result, FoldComparer)

	return writeLines(path, result)
}
