package spellcheck

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extract splits source code into the comments, string literals and
// identifiers that are checked. Keywords are left out.
func Extract(content string, lang Language) []Segment {
	var segments []Segment

	i := 0
	for i < len(content) {
		rest := content[i:]

		// Block comment
		if lang.MultiLineCommentStart != "" && strings.HasPrefix(rest, lang.MultiLineCommentStart) {
			start := i + len(lang.MultiLineCommentStart)
			end := indexFrom(content, lang.MultiLineCommentEnd, start)
			segments = appendSegment(segments, KindComment, content, start, end)
			i = skipPast(content, end, lang.MultiLineCommentEnd)
			continue
		}

		// Raw string literal
		if d, ok := matchRawDelimiter(rest, lang.RawStringDelimiters); ok {
			start := i + len(d.Open)
			end := indexFrom(content, d.Close, start)
			segments = appendSegment(segments, KindString, content, start, end)
			i = skipPast(content, end, d.Close)
			continue
		}

		// Line comment
		if lang.SingleLineComment != "" && strings.HasPrefix(rest, lang.SingleLineComment) {
			start := i + len(lang.SingleLineComment)
			end := indexFrom(content, "\n", start)
			segments = appendSegment(segments, KindComment, content, start, end)
			i = end
			continue
		}

		// String literal
		if d, ok := matchPrefix(rest, lang.StringDelimiters); ok {
			start := i + len(d)
			end := stringEnd(content, start, d)
			if end > start {
				segments = append(segments, Segment{
					Kind:   KindString,
					Text:   maskEscapes(content[start:end]),
					Offset: start,
				})
			}
			i = skipPast(content, end, d)
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)

		// Identifier
		if unicode.IsLetter(r) || r == '_' {
			end := i + size
			for end < len(content) {
				r, size := utf8.DecodeRuneInString(content[end:])
				if !isIdentifierChar(r) {
					break
				}
				end += size
			}
			if word := content[i:end]; !lang.IsKeyword(word) {
				segments = append(segments, Segment{Kind: KindIdentifier, Text: word, Offset: i})
			}
			i = end
			continue
		}

		// Numeric literals such as 0x1F or 1e10 are not identifiers
		if unicode.IsDigit(r) {
			i += size
			for i < len(content) {
				r, size := utf8.DecodeRuneInString(content[i:])
				if !isIdentifierChar(r) && r != '.' {
					break
				}
				i += size
			}
			continue
		}

		i += size
	}

	return segments
}

// IdentifierPrefixLength returns the length of a prefix that is not checked:
// leading underscores, or a one-letter scope prefix such as "m_" or "s_".
func IdentifierPrefixLength(identifier string) int {
	n := 0
	for n < len(identifier) && identifier[n] == '_' {
		n++
	}
	if n > 0 {
		return n
	}

	if len(identifier) > 2 && identifier[1] == '_' && identifier[0] >= 'a' && identifier[0] <= 'z' {
		return 2
	}

	return 0
}

func isIdentifierChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func appendSegment(segments []Segment, kind, content string, start, end int) []Segment {
	if end <= start {
		return segments
	}
	return append(segments, Segment{Kind: kind, Text: content[start:end], Offset: start})
}

// indexFrom returns the index of sub in content at or after from, or len(content)
func indexFrom(content, sub string, from int) int {
	if sub == "" || from >= len(content) {
		return len(content)
	}
	if idx := strings.Index(content[from:], sub); idx >= 0 {
		return from + idx
	}
	return len(content)
}

// skipPast returns the offset after the delimiter found at end, or end when
// the literal was not closed
func skipPast(content string, end int, delimiter string) int {
	if end < len(content) && strings.HasPrefix(content[end:], delimiter) {
		return end + len(delimiter)
	}
	return end
}

func matchRawDelimiter(s string, delimiters []Delimiter) (Delimiter, bool) {
	for _, d := range delimiters {
		if d.Open != "" && strings.HasPrefix(s, d.Open) {
			return d, true
		}
	}
	return Delimiter{}, false
}

func matchPrefix(s string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return p, true
		}
	}
	return "", false
}

// stringEnd finds the closing delimiter of a string literal on the same line.
// An unterminated literal ends at the end of the line.
func stringEnd(content string, start int, delimiter string) int {
	i := start
	for i < len(content) {
		switch {
		case content[i] == '\\':
			i += 2
			continue
		case content[i] == '\n':
			return i
		case strings.HasPrefix(content[i:], delimiter):
			return i
		}
		i++
	}
	return len(content)
}

// maskEscapes blanks escape sequences such as \n so that they do not glue
// onto the following word. Byte offsets are preserved.
func maskEscapes(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}

	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' {
			continue
		}
		b[i] = ' '
		if i+1 < len(b) && b[i+1] < utf8.RuneSelf {
			b[i+1] = ' '
			i++
		}
	}
	return string(b)
}
