package spelling

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Comparer defines equality for the values of a word list
type Comparer interface {
	// Key returns the value under which s is stored; equal values share a key
	Key(s string) string
	// Equal reports whether a and b are the same value
	Equal(a, b string) bool
}

type ordinalComparer struct{}

func (ordinalComparer) Key(s string) string { return s }

func (ordinalComparer) Equal(a, b string) bool { return a == b }

type foldComparer struct{}

// A Caser keeps state and must not be shared between goroutines
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// Key folds s. ASCII strings are lowered directly.
func (foldComparer) Key(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}

	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)
	return c.String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func (c foldComparer) Equal(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	return c.Key(a) == c.Key(b)
}

var (
	// OrdinalComparer compares values exactly
	OrdinalComparer Comparer = ordinalComparer{}
	// FoldComparer compares values using Unicode case folding
	FoldComparer Comparer = foldComparer{}
)
