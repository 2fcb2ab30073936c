package spelling

import (
	"unicode"
	"unicode/utf8"
)

// SplitMode selects which boundaries split a value into pieces
type SplitMode uint8

const (
	// SplitNonLetters splits at every run of non-letter characters; the run is discarded
	SplitNonLetters SplitMode = 1 << iota
	// SplitCase splits "camelCase" into "camel"/"Case" and "HTMLParser" into "HTML"/"Parser"
	SplitCase
	// SplitHyphens splits at each hyphen; the hyphen is discarded
	SplitHyphens
)

const (
	// IdentifierSplitMode is used for identifiers
	IdentifierSplitMode = SplitNonLetters | SplitCase
	// TextSplitMode is the default mode for words found in free text
	TextSplitMode = SplitCase | SplitHyphens
)

// Has reports whether all flags of other are set in m
func (m SplitMode) Has(other SplitMode) bool {
	return m&other == other
}

// Boundary is a split point inside a value. Start == End for a zero-width
// case boundary; otherwise s[Start:End] is the discarded separator.
type Boundary struct {
	Start int
	End   int
}

// Piece is one part of a split value
type Piece struct {
	Value string
	Index int
}

// SplitBoundaries returns the boundaries of s at or after byte offset from.
// Characters before from are still consulted for case boundaries, so a
// boundary can be reported at exactly from.
func SplitBoundaries(s string, from int, mode SplitMode) []Boundary {
	var boundaries []Boundary

	prev, _ := runeBefore(s, from)
	i := from

	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		if !unicode.IsLetter(r) {
			if mode.Has(SplitNonLetters) {
				start := i
				for i < len(s) {
					r, size = utf8.DecodeRuneInString(s[i:])
					if unicode.IsLetter(r) {
						break
					}
					prev = r
					i += size
				}
				boundaries = append(boundaries, Boundary{Start: start, End: i})
				continue
			}

			if r == '-' && mode.Has(SplitHyphens) {
				boundaries = append(boundaries, Boundary{Start: i, End: i + size})
			}

			prev = r
			i += size
			continue
		}

		if mode.Has(SplitCase) && i > 0 && isCaseBoundary(prev, r, s, i+size) {
			boundaries = append(boundaries, Boundary{Start: i, End: i})
		}

		prev = r
		i += size
	}

	return boundaries
}

// isCaseBoundary reports whether a boundary lies between prev and r.
// next is the byte offset of the rune following r.
func isCaseBoundary(prev, r rune, s string, next int) bool {
	if !unicode.IsUpper(r) {
		return false
	}

	if unicode.IsLower(prev) {
		return true
	}

	if unicode.IsUpper(prev) {
		following, _ := runeAt(s, next)
		return unicode.IsLower(following)
	}

	return false
}

// SplitValue splits s into pieces using mode. Empty pieces are dropped.
func SplitValue(s string, mode SplitMode) []Piece {
	return piecesBetween(s, 0, SplitBoundaries(s, 0, mode))
}

// piecesBetween returns the non-empty pieces of s[from:] delimited by boundaries
func piecesBetween(s string, from int, boundaries []Boundary) []Piece {
	pieces := make([]Piece, 0, len(boundaries)+1)
	prevIndex := from

	for _, b := range boundaries {
		if b.Start > prevIndex {
			pieces = append(pieces, Piece{Value: s[prevIndex:b.Start], Index: prevIndex})
		}
		prevIndex = b.End
	}

	if prevIndex < len(s) {
		pieces = append(pieces, Piece{Value: s[prevIndex:], Index: prevIndex})
	}

	return pieces
}
