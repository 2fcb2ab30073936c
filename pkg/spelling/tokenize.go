package spelling

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var (
	urlRegex = regexp.MustCompile(`(?i)\bhttps?://\S+`)

	// standaloneWordRegex matches a whole dictionary entry that is a plain word
	standaloneWordRegex = regexp.MustCompile(`^\p{L}{2,}(?:-\p{L}{2,})*(?:'(?:s|d|ll|m|re|t|ve))?$`)

	// contractions that stay part of a word; "'s" is left out of the word
	contractionSuffixes = []string{"d", "ll", "m", "re", "t", "ve"}
)

// Token is a word found in free text
type Token struct {
	Value string
	Index int
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Index + len(t.Value)
}

// IsStandaloneWord reports whether value is a run of two or more letters,
// optionally hyphen-joined, with an optional contraction or possessive suffix.
func IsStandaloneWord(value string) bool {
	return standaloneWordRegex.MatchString(value)
}

// urlSpans returns the [start, end) byte spans of URLs in text
func urlSpans(text string) [][]int {
	return urlRegex.FindAllStringIndex(text, -1)
}

// Tokenize returns the words of text[start:end] in order. The region is
// scanned as if it were the whole input, so its edges count as word boundaries.
//
// A word starts at a word boundary with two or more letters, may continue with
// hyphen-joined runs of two or more letters and may end with one of the
// suffixes 'd 'll 'm 're 't 've. A following 's is not part of the word.
func Tokenize(text string, start, end int) []Token {
	var tokens []Token

	i := start
	for i < end {
		r, size := utf8.DecodeRuneInString(text[i:end])

		if !unicode.IsLetter(r) || !atWordStart(text, start, i) {
			i += size
			continue
		}

		if tokenEnd, ok := matchWord(text, i, end); ok {
			tokens = append(tokens, Token{Value: text[i:tokenEnd], Index: i})
			i = tokenEnd
			continue
		}

		i += size
	}

	return tokens
}

// atWordStart reports whether a word boundary precedes offset i
func atWordStart(text string, start, i int) bool {
	if i == start {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[start:i])
	return !isWordChar(prev)
}

// matchWord returns the end of the word starting at i. Hyphenated forms are
// tried from the longest to the shortest until one ends at a valid boundary.
func matchWord(text string, i, end int) (int, bool) {
	runEnd, count := letterRunEnd(text, i, end)
	if count < 2 {
		return 0, false
	}

	ends := []int{runEnd}
	for runEnd < end && text[runEnd] == '-' {
		next, count := letterRunEnd(text, runEnd+1, end)
		if count < 2 {
			break
		}
		runEnd = next
		ends = append(ends, runEnd)
	}

	for k := len(ends) - 1; k >= 0; k-- {
		if wordEnd, ok := matchWordEnd(text, ends[k], end); ok {
			return wordEnd, true
		}
	}

	return 0, false
}

// matchWordEnd checks the word ending at j, extending it over a contraction suffix
func matchWordEnd(text string, j, end int) (int, bool) {
	if j < end && text[j] == '\'' {
		rest := j + 1

		// possessive: the word stops before 's
		if rest < end && text[rest] == 's' && isBoundaryAt(text, rest+1, end) {
			return j, true
		}

		for _, suffix := range contractionSuffixes {
			k := rest + len(suffix)
			if k <= end && text[rest:k] == suffix && isBoundaryAt(text, k, end) {
				return k, true
			}
		}

		// bare apostrophe followed by a non-letter word character
		if r, _ := runeAt(text[:end], rest); rest < end && !unicode.IsLetter(r) && isWordChar(r) {
			return rest, true
		}
	}

	return j, isBoundaryAt(text, j, end)
}

// isBoundaryAt reports whether offset j, preceded by a word character,
// ends a word: either the end of the region or a non-word character.
func isBoundaryAt(text string, j, end int) bool {
	if j >= end {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[j:end])
	return !isWordChar(r)
}
