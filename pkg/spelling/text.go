package spelling

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextCasing describes the letter casing of a value
type TextCasing int

const (
	// CasingUndefined is used for mixed casing such as "fooBar" or values without letters
	CasingUndefined TextCasing = iota
	// CasingLower is used when every letter is lowercase ("foo")
	CasingLower
	// CasingUpper is used when every letter is uppercase ("FOO")
	CasingUpper
	// CasingFirstUpper is used when only the first letter is uppercase ("Foo")
	CasingFirstUpper
)

// String returns the name of the casing
func (c TextCasing) String() string {
	switch c {
	case CasingLower:
		return "lower"
	case CasingUpper:
		return "upper"
	case CasingFirstUpper:
		return "first-upper"
	default:
		return "undefined"
	}
}

// GetTextCasing returns the casing of the letters in value.
// Non-letter characters are ignored.
func GetTextCasing(value string) TextCasing {
	var lower, upper, letters int
	firstUpper := false

	for _, r := range value {
		if !unicode.IsLetter(r) {
			continue
		}

		switch {
		case unicode.IsUpper(r):
			if letters == 0 {
				firstUpper = true
			}
			upper++
		case unicode.IsLower(r):
			lower++
		}

		letters++
	}

	switch {
	case letters == 0:
		return CasingUndefined
	case lower == letters:
		return CasingLower
	case upper == letters:
		if letters == 1 {
			return CasingFirstUpper
		}
		return CasingUpper
	case firstUpper && upper == 1 && lower == letters-1:
		return CasingFirstUpper
	default:
		return CasingUndefined
	}
}

// SetTextCasing returns value rewritten with the given casing.
// CasingUndefined returns value unchanged.
func SetTextCasing(value string, casing TextCasing) string {
	switch casing {
	case CasingLower:
		return strings.ToLower(value)
	case CasingUpper:
		return strings.ToUpper(value)
	case CasingFirstUpper:
		r, size := utf8.DecodeRuneInString(value)
		if r == utf8.RuneError {
			return value
		}
		return string(unicode.ToUpper(r)) + strings.ToLower(value[size:])
	default:
		return value
	}
}

// TextCasingEquals reports whether a and b have the same defined casing
func TextCasingEquals(a, b string) bool {
	casing := GetTextCasing(a)

	return casing != CasingUndefined && casing == GetTextCasing(b)
}

// isLowerValue reports whether value has no letter that is not lowercase
func isLowerValue(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}

	return true
}

// isWordChar matches the characters that take part in a word boundary:
// letters, nonspacing marks, decimal digits and connector punctuation.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Pc, r)
}

// runeLen returns the number of characters in value
func runeLen(value string) int {
	return utf8.RuneCountInString(value)
}

// runeAt decodes the rune at byte offset i, returning utf8.RuneError and 0 at the end of s
func runeAt(s string, i int) (rune, int) {
	if i >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}

// runeBefore decodes the rune ending at byte offset i
func runeBefore(s string, i int) (rune, int) {
	if i <= 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(s[:i])
}

// letterRunEnd returns the end of the run of letters starting at i
// and the number of letters in it.
func letterRunEnd(s string, i, end int) (int, int) {
	count := 0

	for i < end {
		r, size := utf8.DecodeRuneInString(s[i:end])
		if !unicode.IsLetter(r) {
			break
		}
		i += size
		count++
	}

	return i, count
}
