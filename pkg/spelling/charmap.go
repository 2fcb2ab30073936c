package spelling

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// WordChar is a character at a position within a word
type WordChar struct {
	Char  rune
	Index int
}

// WordCharMap indexes words by the character found at each position.
// A reversed map counts positions from the end of the word.
type WordCharMap struct {
	reversed bool
	items    map[WordChar]map[string]struct{}
}

// NewWordCharMap indexes the lowercased words
func NewWordCharMap(words []string, reversed bool) *WordCharMap {
	m := &WordCharMap{reversed: reversed, items: make(map[WordChar]map[string]struct{})}

	for _, word := range words {
		word = strings.ToLower(word)
		runes := []rune(word)
		for i, r := range runes {
			index := i
			if reversed {
				index = len(runes) - 1 - i
			}
			key := WordChar{Char: r, Index: index}
			set, ok := m.items[key]
			if !ok {
				set = make(map[string]struct{})
				m.items[key] = set
			}
			set[word] = struct{}{}
		}
	}

	return m
}

// Reversed reports whether positions are counted from the end
func (m *WordCharMap) Reversed() bool {
	return m.reversed
}

// Len returns the number of distinct (character, position) pairs
func (m *WordCharMap) Len() int {
	return len(m.items)
}

// Lookup returns the words that have ch at index
func (m *WordCharMap) Lookup(ch rune, index int) (map[string]struct{}, bool) {
	set, ok := m.items[WordChar{Char: ch, Index: index}]
	return set, ok
}

// LookupAt returns the words that share the character of value at index.
// For a reversed map, index counts from the end of value.
func (m *WordCharMap) LookupAt(value string, index int) (map[string]struct{}, bool) {
	runes := []rune(value)
	i := index
	if m.reversed {
		i = len(runes) - 1 - index
	}
	if i < 0 || i >= len(runes) {
		return nil, false
	}
	return m.Lookup(runes[i], index)
}

// AnagramMap groups words by their sorted letters
type AnagramMap struct {
	items map[string][]string
}

// NewAnagramMap groups the lowercased words by their sorted characters
func NewAnagramMap(words []string) *AnagramMap {
	items := make(map[string][]string)
	seen := make(map[string]struct{}, len(words))

	for _, word := range words {
		word = strings.ToLower(word)
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		key := anagramKey(word)
		items[key] = append(items[key], word)
	}

	for _, group := range items {
		sort.Strings(group)
	}

	return &AnagramMap{items: items}
}

// Lookup returns the words made of the same characters as value
func (m *AnagramMap) Lookup(value string) []string {
	return m.items[anagramKey(strings.ToLower(value))]
}

// Len returns the number of groups
func (m *AnagramMap) Len() int {
	return len(m.items)
}

func anagramKey(word string) string {
	runes := make([]rune, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	if len(b) < len(a) {
		a, b = b, a
	}
	result := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			result[k] = struct{}{}
		}
	}
	return result
}
