package spelling

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordSequence is a multi-word dictionary entry such as "New York"
type WordSequence struct {
	words []string
}

// NewWordSequence creates a sequence from words. Empty words are dropped.
func NewWordSequence(words ...string) WordSequence {
	seq := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			seq = append(seq, w)
		}
	}
	return WordSequence{words: seq}
}

// Len returns the number of words in the sequence
func (s WordSequence) Len() int {
	return len(s.words)
}

// First returns the first word, or "" for an empty sequence
func (s WordSequence) First() string {
	if len(s.words) == 0 {
		return ""
	}
	return s.words[0]
}

// Words returns a copy of the words
func (s WordSequence) Words() []string {
	return append([]string(nil), s.words...)
}

// String joins the words with a single space
func (s WordSequence) String() string {
	return strings.Join(s.words, " ")
}

// WordSequenceMatch is a sequence recognized in a text. The zero value means no match.
type WordSequenceMatch struct {
	Sequence WordSequence
	Index    int
	Length   int
}

// IsZero reports whether the match is empty
func (m WordSequenceMatch) IsZero() bool {
	return m.Length == 0
}

// End returns the byte offset just past the match
func (m WordSequenceMatch) End() int {
	return m.Index + m.Length
}

// matchSequence walks seq through text starting at the anchor token, which
// must already equal the first word. Words are separated by exactly one
// run of whitespace and the last word must end at a non-letter or at end.
func matchSequence(text string, end int, anchor Token, seq WordSequence, cmp Comparer) (WordSequenceMatch, bool) {
	i := anchor.End()

	for _, word := range seq.words[1:] {
		ws := i
		for i < end {
			r, size := utf8.DecodeRuneInString(text[i:end])
			if !unicode.IsSpace(r) {
				break
			}
			i += size
		}
		if i == ws {
			return WordSequenceMatch{}, false
		}

		n := runePrefixLen(text[i:end], runeLen(word))
		if n == 0 || !cmp.Equal(text[i:i+n], word) {
			return WordSequenceMatch{}, false
		}
		i += n
	}

	if r, _ := runeAt(text[:end], i); i < end && unicode.IsLetter(r) {
		return WordSequenceMatch{}, false
	}

	return WordSequenceMatch{Sequence: seq, Index: anchor.Index, Length: i - anchor.Index}, true
}

// runePrefixLen returns the byte length of the first n runes of s,
// or 0 when s is shorter than n runes.
func runePrefixLen(s string, n int) int {
	i := 0
	for ; n > 0; n-- {
		if i >= len(s) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
