package spelling

import (
	"math"
	"unicode"
)

// Options configures a Spellchecker
type Options struct {
	// MinWordLength is the minimal length of a flagged value
	MinWordLength int
	// MaxWordLength is the maximal length of a flagged value
	MaxWordLength int
	// TextSplitMode splits the words found in free text
	TextSplitMode SplitMode
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MinWordLength: 3,
		MaxWordLength: math.MaxInt,
		TextSplitMode: TextSplitMode,
	}
}

// SpellingMatch is a value that is not in the dictionary. Index is the byte
// offset in the analyzed string. When the value was split out of a larger
// value, Parent and ParentIndex describe that value.
type SpellingMatch struct {
	Value       string `json:"value"`
	Index       int    `json:"index"`
	Parent      string `json:"parent,omitempty"`
	ParentIndex int    `json:"parent_index,omitempty"`
}

// End returns the byte offset just past the value
func (m SpellingMatch) End() int {
	return m.Index + len(m.Value)
}

// HasParent reports whether the value was split out of a larger value
func (m SpellingMatch) HasParent() bool {
	return m.Parent != ""
}

// Spellchecker finds unknown words in identifiers and text. It only reads
// its SpellingData and may be used from any number of goroutines.
type Spellchecker struct {
	data *SpellingData
	opts Options
}

// NewSpellchecker creates a spellchecker. Zero option values are replaced with defaults.
func NewSpellchecker(data *SpellingData, opts Options) *Spellchecker {
	defaults := DefaultOptions()
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = defaults.MinWordLength
	}
	if opts.MaxWordLength <= 0 {
		opts.MaxWordLength = defaults.MaxWordLength
	}
	if opts.TextSplitMode == 0 {
		opts.TextSplitMode = defaults.TextSplitMode
	}

	return &Spellchecker{data: data, opts: opts}
}

// Data returns the dictionary snapshot
func (c *Spellchecker) Data() *SpellingData {
	return c.data
}

// Options returns the options
func (c *Spellchecker) Options() Options {
	return c.opts
}

// WithData returns a spellchecker with the same options over another snapshot
func (c *Spellchecker) WithData(data *SpellingData) *Spellchecker {
	return &Spellchecker{data: data, opts: c.opts}
}

// AnalyzeText returns the unknown words of a comment or string literal.
// URLs are skipped and dictionary sequences such as "New York" are accepted as a whole.
func (c *Spellchecker) AnalyzeText(text string) []SpellingMatch {
	var matches []SpellingMatch

	prevEnd := 0
	for _, span := range urlSpans(text) {
		matches = c.analyzeTextRegion(text, prevEnd, span[0], matches)
		prevEnd = span[1]
	}

	return c.analyzeTextRegion(text, prevEnd, len(text), matches)
}

func (c *Spellchecker) analyzeTextRegion(text string, start, end int, matches []SpellingMatch) []SpellingMatch {
	if start >= end {
		return matches
	}

	covered := -1

	for _, token := range Tokenize(text, start, end) {
		if covered >= 0 {
			if token.Index <= covered {
				continue
			}
			covered = -1
		}

		if seq := c.data.GetSequenceMatch(text, start, end-start, token); !seq.IsZero() {
			covered = seq.End()
			continue
		}

		if !c.lengthInRange(token.Value) {
			continue
		}

		matches = c.analyzeSplit(token.Value, token.Index, 0, c.opts.TextSplitMode, matches)
	}

	return matches
}

// AnalyzeIdentifier returns the unknown parts of an identifier. The first
// prefixLength bytes are a prefix such as "_" or "m_" that is not checked.
func (c *Spellchecker) AnalyzeIdentifier(value string, prefixLength int) []SpellingMatch {
	if runeLen(value) < c.opts.MinWordLength {
		return nil
	}

	if prefixLength < 0 || prefixLength >= len(value) {
		prefixLength = 0
	}

	if c.data.Contains(value) || (prefixLength > 0 && c.data.Contains(value[prefixLength:])) {
		return nil
	}

	return c.analyzeSplit(value, 0, prefixLength, IdentifierSplitMode, nil)
}

// analyzeSplit splits input, located at offset in the analyzed string, and
// checks each piece. A boundary at exactly prefixLength is not a split point.
func (c *Spellchecker) analyzeSplit(input string, offset, prefixLength int, mode SplitMode, matches []SpellingMatch) []SpellingMatch {
	boundaries := SplitBoundaries(input, prefixLength, mode)

	from := prefixLength
	if prefixLength > 0 && len(boundaries) > 0 && boundaries[0].Start == prefixLength {
		from = boundaries[0].End
		boundaries = boundaries[1:]
	}

	if len(boundaries) == 0 {
		if from == 0 {
			return c.analyzeValue(input, offset, "", 0, matches)
		}
		return c.analyzeValue(input[from:], offset+from, input, offset, matches)
	}

	if c.data.Contains(input) {
		return matches
	}

	for _, piece := range piecesBetween(input, from, boundaries) {
		matches = c.analyzeValue(piece.Value, offset+piece.Index, input, offset, matches)
	}

	return matches
}

func (c *Spellchecker) analyzeValue(value string, index int, parent string, parentIndex int, matches []SpellingMatch) []SpellingMatch {
	if !c.isMatch(value, index-parentIndex, parent) {
		return matches
	}

	return append(matches, SpellingMatch{
		Value:       value,
		Index:       index,
		Parent:      parent,
		ParentIndex: parentIndex,
	})
}

// isMatch reports whether value should be flagged. offset is the byte
// offset of value within parent; an empty parent means value stands alone.
func (c *Spellchecker) isMatch(value string, offset int, parent string) bool {
	if !c.lengthInRange(value) {
		return false
	}

	if IsNonsensicalWord(value) {
		return false
	}

	if c.data.Contains(value) {
		return false
	}

	if parent == "" {
		parent, offset = value, 0
	}

	return !c.isPartOfNonWord(parent, offset, len(value))
}

func (c *Spellchecker) lengthInRange(value string) bool {
	n := runeLen(value)
	return n >= c.opts.MinWordLength && n <= c.opts.MaxWordLength
}

// isPartOfNonWord reports whether parent[offset:offset+length] lies inside an
// occurrence of a non-word within parent.
func (c *Spellchecker) isPartOfNonWord(parent string, offset, length int) bool {
	return c.data.caseSensitiveWords.CoversNonWord(parent, offset, length) ||
		c.data.words.CoversNonWord(parent, offset, length)
}

func equalAt(a, b string, foldCase bool) bool {
	if !foldCase {
		return a == b
	}
	if len(a) != len(b) {
		return false
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	for i := range ra {
		if ra[i] != rb[i] && unicode.SimpleFold(ra[i]) != rb[i] && unicode.ToLower(ra[i]) != unicode.ToLower(rb[i]) {
			return false
		}
	}
	return true
}
