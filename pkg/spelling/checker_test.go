package spelling

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(words []string, nonWords []string, sequences ...WordSequence) *Spellchecker {
	var lower, upper []string
	for _, w := range words {
		if isLowerValue(w) {
			lower = append(lower, w)
		} else {
			upper = append(upper, w)
		}
	}

	var seqLower, seqUpper []WordSequence
	for _, s := range sequences {
		if isLowerValue(s.String()) {
			seqLower = append(seqLower, s)
		} else {
			seqUpper = append(seqUpper, s)
		}
	}

	data := NewSpellingData(
		NewWordList(FoldComparer, lower, nonWords, seqLower),
		NewWordList(OrdinalComparer, upper, nil, seqUpper),
		nil,
		nil,
	)

	return NewSpellchecker(data, DefaultOptions())
}

func matchValues(matches []SpellingMatch) []string {
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, m.Value)
	}
	return values
}

func TestAnalyzeText_SequenceCoversWords(t *testing.T) {
	checker := newTestChecker(
		[]string{"live", "and", "not", "new"},
		nil,
		NewWordSequence("New", "York"),
	)

	text := "I live in New York and not New Jersey"
	matches := checker.AnalyzeText(text)

	require.Len(t, matches, 1)
	assert.Equal(t, "Jersey", matches[0].Value)
	assert.Equal(t, strings.Index(text, "Jersey"), matches[0].Index)
	assert.False(t, matches[0].HasParent())
}

func TestAnalyzeText_SequenceWithoutWords(t *testing.T) {
	checker := newTestChecker(
		[]string{"live", "and", "not"},
		nil,
		NewWordSequence("New", "York"),
	)

	matches := checker.AnalyzeText("I live in New York and not New Jersey")

	for _, m := range matches {
		assert.NotEqual(t, "York", m.Value)
		if m.Value == "New" {
			assert.Equal(t, 27, m.Index, "only the second New is outside the sequence")
		}
	}
	assert.Contains(t, matchValues(matches), "Jersey")
}

func TestAnalyzeText_SkipsUrls(t *testing.T) {
	checker := newTestChecker([]string{"see", "for"}, nil)

	matches := checker.AnalyzeText("see https://exmaple.com/foo for detials")

	assert.Equal(t, []string{"detials"}, matchValues(matches))
}

func TestAnalyzeText_HyphenatedWord(t *testing.T) {
	checker := newTestChecker([]string{"well", "fact"}, nil)

	text := "a well-knwon fact"
	matches := checker.AnalyzeText(text)

	require.Len(t, matches, 1)
	assert.Equal(t, "knwon", matches[0].Value)
	assert.Equal(t, 7, matches[0].Index)
	assert.Equal(t, "well-knwon", matches[0].Parent)
	assert.Equal(t, 2, matches[0].ParentIndex)
}

func TestAnalyzeText_KnownHyphenatedWord(t *testing.T) {
	checker := newTestChecker([]string{"send", "fact", "well-known"}, nil)

	assert.Empty(t, checker.AnalyzeText("send a well-known fact"))
}

func TestAnalyzeText_Contractions(t *testing.T) {
	checker := newTestChecker([]string{"it", "john", "don't"}, nil)

	assert.Empty(t, checker.AnalyzeText("it's John's, don't"))
}

func TestAnalyzeIdentifier_KnownWords(t *testing.T) {
	words := []string{"parser", "value", "Foo", "HTML"}
	checker := newTestChecker(words, nil)

	for _, w := range words {
		assert.True(t, checker.Data().Contains(w), w)
		assert.Empty(t, checker.AnalyzeIdentifier(w, 0), w)
	}
}

func TestAnalyzeIdentifier_Nonsensical(t *testing.T) {
	checker := newTestChecker(nil, nil)

	assert.Empty(t, checker.AnalyzeIdentifier("qwerty", 0))
	assert.Empty(t, checker.AnalyzeIdentifier("aabbcc", 0))

	matches := checker.AnalyzeIdentifier("xyzabd", 0)
	require.Len(t, matches, 1)
	assert.Equal(t, SpellingMatch{Value: "xyzabd", Index: 0}, matches[0])
}

func TestAnalyzeIdentifier_CaseBoundaries(t *testing.T) {
	checker := newTestChecker(nil, nil)

	tests := []struct {
		name    string
		value   string
		pieces  []string
		indexes []int
	}{
		{"acronym followed by word", "HTMLParser", []string{"HTML", "Parser"}, []int{0, 4}},
		{"camel case with upper run", "fooBarBAZ", []string{"foo", "Bar", "BAZ"}, []int{0, 3, 6}},
		{"digits and underscores", "read_file2Buffer", []string{"read", "file", "Buffer"}, []int{0, 5, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := checker.AnalyzeIdentifier(tt.value, 0)
			require.Len(t, matches, len(tt.pieces))
			for i, m := range matches {
				assert.Equal(t, tt.pieces[i], m.Value)
				assert.Equal(t, tt.indexes[i], m.Index)
				assert.Equal(t, tt.value, m.Parent)
				assert.Equal(t, 0, m.ParentIndex)
			}
		})
	}
}

func TestAnalyzeIdentifier_Prefix(t *testing.T) {
	checker := newTestChecker([]string{"foo"}, nil)

	assert.Empty(t, checker.AnalyzeIdentifier("_foo", 1))

	matches := checker.AnalyzeIdentifier("_fooBaz", 1)
	require.Len(t, matches, 1)
	assert.Equal(t, "Baz", matches[0].Value)
	assert.Equal(t, 4, matches[0].Index)
	assert.Equal(t, "_fooBaz", matches[0].Parent)

	// the boundary at the end of the prefix does not split
	matches = checker.AnalyzeIdentifier("mBaz", 1)
	require.Len(t, matches, 1)
	assert.Equal(t, "Baz", matches[0].Value)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, "mBaz", matches[0].Parent)
}

func TestAnalyzeIdentifier_WholeValueKnown(t *testing.T) {
	checker := newTestChecker([]string{"Ipsum"}, nil)

	// "Ipsum" is case-sensitive, so "ipsum" is still unknown
	assert.Empty(t, checker.AnalyzeIdentifier("Ipsum", 0))
	assert.Len(t, checker.AnalyzeIdentifier("ipsum", 0), 1)
}

func TestAnalyzeIdentifier_NonWordSubstring(t *testing.T) {
	checker := newTestChecker([]string{"encoder"}, []string{"utf8"})
	assert.Empty(t, checker.AnalyzeIdentifier("utf8Encoder", 0))

	checker = newTestChecker([]string{"encoder"}, nil)
	assert.Equal(t, []string{"utf"}, matchValues(checker.AnalyzeIdentifier("utf8Encoder", 0)))
}

func TestAnalyze_MinWordLength(t *testing.T) {
	data := NewSpellingData(nil, nil, nil, nil)
	opts := DefaultOptions()
	opts.MinWordLength = 4
	checker := NewSpellchecker(data, opts)

	identifiers := []string{"fooBarBAZ", "abcXyzQux", "getItemAt", "xyzabd", "ioReadAll"}
	for _, id := range identifiers {
		for _, m := range checker.AnalyzeIdentifier(id, 0) {
			assert.GreaterOrEqual(t, runeLen(m.Value), opts.MinWordLength, id)
		}
	}

	for _, m := range checker.AnalyzeText("the cat sat on a mat and wrote zxqv-wert code") {
		assert.GreaterOrEqual(t, runeLen(m.Value), opts.MinWordLength, m.Value)
	}
}

func TestAnalyze_MaxWordLength(t *testing.T) {
	data := NewSpellingData(nil, nil, nil, nil)
	checker := NewSpellchecker(data, Options{MaxWordLength: 5})

	assert.Empty(t, checker.AnalyzeIdentifier("abcdefghxy", 0))
	assert.Equal(t, []string{"xyzq"}, matchValues(checker.AnalyzeIdentifier("xyzq", 0)))
}
