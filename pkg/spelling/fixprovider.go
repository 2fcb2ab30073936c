package spelling

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFixes is the maximal number of fixes returned for a value
const MaxFixes = 9

// FixKind describes where a fix comes from
type FixKind int

const (
	// FixPredefined comes from the fix list
	FixPredefined FixKind = iota
	// FixSwap exchanges two letters of the value
	FixSwap
	// FixSplit splits the value into two words
	FixSplit
	// FixEdit replaces, inserts or removes one letter
	FixEdit
	// FixFuzzy comes from a similarity search
	FixFuzzy
)

// String returns the name of the kind
func (k FixKind) String() string {
	switch k {
	case FixPredefined:
		return "predefined"
	case FixSwap:
		return "swap"
	case FixSplit:
		return "split"
	case FixEdit:
		return "edit"
	case FixFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// SpellingFix is a suggested replacement for a misspelled value
type SpellingFix struct {
	Value string  `json:"value"`
	Kind  FixKind `json:"kind"`
}

// FixProvider suggests corrections for the values reported by a Spellchecker
type FixProvider struct {
	data *SpellingData
}

// NewFixProvider creates a fix provider over a dictionary snapshot
func NewFixProvider(data *SpellingData) *FixProvider {
	return &FixProvider{data: data}
}

// Fixes returns up to MaxFixes corrections for value. With identifier set,
// split fixes are joined in camel case; otherwise with a space.
// Every fix is rewritten to the casing of value when that casing is defined.
func (p *FixProvider) Fixes(value string, identifier bool) []SpellingFix {
	if value == "" {
		return nil
	}

	casing := GetTextCasing(value)
	lower := strings.ToLower(value)

	var fixes []SpellingFix
	seen := make(map[string]struct{})

	add := func(fix string, kind FixKind) bool {
		if casing != CasingUndefined && kind != FixSplit {
			fix = SetTextCasing(fix, casing)
		}
		if fix == value {
			return true
		}
		key := FoldComparer.Key(fix)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		fixes = append(fixes, SpellingFix{Value: fix, Kind: kind})
		return len(fixes) < MaxFixes
	}

	if values, ok := p.data.Fixes().TryGetValue(value); ok {
		for _, v := range values {
			if !add(v, FixPredefined) {
				return fixes
			}
		}
	}

	for _, v := range p.swapFixes(lower) {
		if !add(v, FixSwap) {
			return fixes
		}
	}

	for _, v := range p.splitFixes(value, identifier) {
		if !add(v, FixSplit) {
			return fixes
		}
	}

	for _, v := range p.editFixes(lower) {
		if !add(v, FixEdit) {
			return fixes
		}
	}

	return fixes
}

// swapFixes returns the words that differ from value by two exchanged letters
func (p *FixProvider) swapFixes(value string) []string {
	var result []string

	for _, word := range p.data.CharAnagramMap().Lookup(value) {
		if word != value && differingPositions(word, value) == 2 {
			result = append(result, word)
		}
	}

	return result
}

// splitFixes returns the ways value can be split into two known words
func (p *FixProvider) splitFixes(value string, identifier bool) []string {
	var result []string

	// "Tvalue" -> "TValue", "Ifoo" -> "IFoo"
	if first, size := utf8.DecodeRuneInString(value); (first == 'T' || first == 'I') && size < len(value) {
		second, _ := utf8.DecodeRuneInString(value[size:])
		if unicode.IsLower(second) && p.data.Contains(value[size:]) {
			result = append(result, string(first)+SetTextCasing(value[size:], CasingFirstUpper))
		}
	}

	for _, i := range p.splitIndexes(value) {
		left, right := value[:i], value[i:]
		if identifier {
			result = append(result, left+SetTextCasing(right, CasingFirstUpper))
		} else {
			result = append(result, left+" "+right)
		}
	}

	return result
}

// splitIndexes returns the byte offsets at which value splits into two words.
// Candidates are narrowed with the character maps: the left part must start
// like a known word and the right part must end like one.
func (p *FixProvider) splitIndexes(value string) []int {
	lower := strings.ToLower(value)
	runes := []rune(lower)
	if len(runes) < 4 {
		return nil
	}

	starts, ok := p.data.CharIndexMap().Lookup(runes[0], 0)
	if !ok {
		return nil
	}
	ends, ok := p.data.ReversedCharIndexMap().Lookup(runes[len(runes)-1], 0)
	if !ok {
		return nil
	}

	var indexes []int
	offset := 0
	for i := 0; i < len(runes)-1; i++ {
		offset += utf8.RuneLen(runes[i])
		if i < 1 {
			continue
		}
		left, right := lower[:offset], lower[offset:]
		if _, ok := starts[left]; !ok {
			continue
		}
		if _, ok := ends[right]; !ok {
			continue
		}
		indexes = append(indexes, byteOffset(value, i+1))
	}

	return indexes
}

// editFixes returns the words that differ from value by one replaced,
// inserted or removed letter
func (p *FixProvider) editFixes(value string) []string {
	runes := []rune(value)
	n := len(runes)
	if n < 2 {
		return nil
	}

	forward := p.data.CharIndexMap()
	reversed := p.data.ReversedCharIndexMap()

	candidates := make(map[string]struct{})

	// one replaced letter: every other position matches
	for k := 0; k < n; k++ {
		set := lookupExcept(forward, runes, k)
		for word := range set {
			if utf8.RuneCountInString(word) == n && word != value {
				candidates[word] = struct{}{}
			}
		}
	}

	// one extra letter in value: letters before k match from the start, letters after k match from the end
	for k := 0; k < n; k++ {
		var set map[string]struct{}
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			var next map[string]struct{}
			var ok bool
			if i < k {
				next, ok = forward.Lookup(runes[i], i)
			} else {
				next, ok = reversed.Lookup(runes[i], n-1-i)
			}
			if !ok {
				set = nil
				break
			}
			if set == nil {
				set = next
			} else {
				set = intersect(set, next)
			}
			if len(set) == 0 {
				break
			}
		}
		for word := range set {
			if utf8.RuneCountInString(word) == n-1 {
				candidates[word] = struct{}{}
			}
		}
	}

	// one missing letter in value: the candidate is one longer and matches value around the gap
	for k := 0; k <= n; k++ {
		var set map[string]struct{}
		for i := 0; i < n; i++ {
			var next map[string]struct{}
			var ok bool
			if i < k {
				next, ok = forward.Lookup(runes[i], i)
			} else {
				next, ok = reversed.Lookup(runes[i], n-1-i)
			}
			if !ok {
				set = nil
				break
			}
			if set == nil {
				set = next
			} else {
				set = intersect(set, next)
			}
			if len(set) == 0 {
				break
			}
		}
		for word := range set {
			if utf8.RuneCountInString(word) == n+1 {
				candidates[word] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(candidates))
	for word := range candidates {
		result = append(result, word)
	}
	sort.Strings(result)

	return result
}

// lookupExcept intersects the words matching runes at every position but skip
func lookupExcept(m *WordCharMap, runes []rune, skip int) map[string]struct{} {
	var set map[string]struct{}

	for i, r := range runes {
		if i == skip {
			continue
		}
		next, ok := m.Lookup(r, i)
		if !ok {
			return nil
		}
		if set == nil {
			set = next
		} else {
			set = intersect(set, next)
		}
		if len(set) == 0 {
			return nil
		}
	}

	return set
}

// differingPositions counts the positions at which a and b differ
func differingPositions(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return -1
	}

	count := 0
	for i := range ra {
		if ra[i] != rb[i] {
			count++
		}
	}

	return count
}

// byteOffset returns the byte offset of the n-th rune of s
func byteOffset(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
