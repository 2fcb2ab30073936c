package spelling

import (
	"sync/atomic"
)

// SpellingData is an immutable dictionary snapshot. The Add methods return a
// new snapshot that shares the unchanged lists with the receiver; the
// receiver stays valid and can be queried concurrently.
type SpellingData struct {
	words              *WordList // case-insensitive
	caseSensitiveWords *WordList
	ignoredValues      *valueSet
	fixes              *FixList

	charIndexMap         atomic.Pointer[WordCharMap]
	reversedCharIndexMap atomic.Pointer[WordCharMap]
	charAnagramMap       atomic.Pointer[AnagramMap]
}

// NewSpellingData creates a snapshot. Nil arguments are replaced with empty values.
func NewSpellingData(words, caseSensitiveWords *WordList, fixes *FixList, ignoredValues []string) *SpellingData {
	if words == nil {
		words = EmptyWordList(FoldComparer)
	}
	if caseSensitiveWords == nil {
		caseSensitiveWords = EmptyWordList(OrdinalComparer)
	}
	if fixes == nil {
		fixes = EmptyFixList()
	}

	return &SpellingData{
		words:              words,
		caseSensitiveWords: caseSensitiveWords,
		ignoredValues:      newValueSet(OrdinalComparer, ignoredValues),
		fixes:              fixes,
	}
}

// NewSpellingDataFromResult creates a snapshot from loaded dictionaries
func NewSpellingDataFromResult(result LoadResult) *SpellingData {
	return NewSpellingData(result.List, result.CaseSensitiveList, result.Fixes, nil)
}

// Words returns the case-insensitive word list
func (d *SpellingData) Words() *WordList {
	return d.words
}

// CaseSensitiveWords returns the case-sensitive word list
func (d *SpellingData) CaseSensitiveWords() *WordList {
	return d.caseSensitiveWords
}

// Fixes returns the fix list
func (d *SpellingData) Fixes() *FixList {
	return d.fixes
}

// IgnoredValues returns the ignored values in sorted order
func (d *SpellingData) IgnoredValues() []string {
	return d.ignoredValues.Values()
}

// Contains reports whether value is ignored or is a word of either list
func (d *SpellingData) Contains(value string) bool {
	return d.ignoredValues.Contains(value) ||
		d.caseSensitiveWords.Contains(value) ||
		d.words.Contains(value)
}

// ContainsNonWord reports whether value is a non-word of either list
func (d *SpellingData) ContainsNonWord(value string) bool {
	return d.caseSensitiveWords.ContainsNonWord(value) || d.words.ContainsNonWord(value)
}

// GetSequenceMatch returns the longest dictionary sequence that starts with
// the anchor token in text[start:start+length]. Case-sensitive sequences are
// tried first; a later candidate wins only if it is strictly longer.
func (d *SpellingData) GetSequenceMatch(text string, start, length int, anchor Token) WordSequenceMatch {
	end := start + length
	if end > len(text) {
		end = len(text)
	}

	var best WordSequenceMatch

	for _, list := range []*WordList{d.caseSensitiveWords, d.words} {
		for _, seq := range list.Sequences(anchor.Value) {
			if seq.Len() < 2 {
				continue
			}
			match, ok := matchSequence(text, end, anchor, seq, list.Comparer())
			if ok && match.Length > best.Length {
				best = match
			}
		}
	}

	return best
}

// AddWord returns a snapshot containing value. A value with an uppercase
// letter goes to the case-sensitive list.
func (d *SpellingData) AddWord(value string) *SpellingData {
	return d.AddWords(value)
}

// AddWords returns a snapshot containing values
func (d *SpellingData) AddWords(values ...string) *SpellingData {
	var lower, other []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if isLowerValue(v) {
			lower = append(lower, v)
		} else {
			other = append(other, v)
		}
	}

	return d.with(d.words.AddValues(lower...), d.caseSensitiveWords.AddValues(other...), d.ignoredValues, d.fixes)
}

// AddFix returns a snapshot in which value is a correction of key
func (d *SpellingData) AddFix(key, value string) *SpellingData {
	return d.with(d.words, d.caseSensitiveWords, d.ignoredValues, d.fixes.Add(key, value))
}

// AddIgnoredValue returns a snapshot in which value is never flagged
func (d *SpellingData) AddIgnoredValue(value string) *SpellingData {
	return d.AddIgnoredValues(value)
}

// AddIgnoredValues returns a snapshot in which values are never flagged
func (d *SpellingData) AddIgnoredValues(values ...string) *SpellingData {
	return d.with(d.words, d.caseSensitiveWords, d.ignoredValues.With(values...), d.fixes)
}

// with returns a new snapshot; its caches start empty
func (d *SpellingData) with(words, caseSensitiveWords *WordList, ignored *valueSet, fixes *FixList) *SpellingData {
	return &SpellingData{
		words:              words,
		caseSensitiveWords: caseSensitiveWords,
		ignoredValues:      ignored,
		fixes:              fixes,
	}
}

// allWords returns the words of both lists
func (d *SpellingData) allWords() []string {
	words := d.words.Words()
	return append(words, d.caseSensitiveWords.Words()...)
}

// CharIndexMap returns the words indexed by character position. It is built
// on first use; concurrent first callers may each build it, but all of them
// get the one value that was installed.
func (d *SpellingData) CharIndexMap() *WordCharMap {
	return installOnce(&d.charIndexMap, func() *WordCharMap {
		return NewWordCharMap(d.allWords(), false)
	})
}

// ReversedCharIndexMap returns the words indexed by character position from the end
func (d *SpellingData) ReversedCharIndexMap() *WordCharMap {
	return installOnce(&d.reversedCharIndexMap, func() *WordCharMap {
		return NewWordCharMap(d.allWords(), true)
	})
}

// CharAnagramMap returns the words grouped by their sorted characters
func (d *SpellingData) CharAnagramMap() *AnagramMap {
	return installOnce(&d.charAnagramMap, func() *AnagramMap {
		return NewAnagramMap(d.allWords())
	})
}

func installOnce[T any](p *atomic.Pointer[T], build func() *T) *T {
	if v := p.Load(); v != nil {
		return v
	}
	v := build()
	if p.CompareAndSwap(nil, v) {
		return v
	}
	return p.Load()
}
