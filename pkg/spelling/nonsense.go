package spelling

// placeholderWords are keyboard runs used as placeholder values
var placeholderWords = map[string]struct{}{
	"xyz": {}, "Xyz": {}, "XYZ": {},
	"asdfgh": {}, "Asdfgh": {}, "ASDFGH": {},
	"qwerty": {}, "Qwerty": {}, "QWERTY": {},
	"qwertz": {}, "Qwertz": {}, "QWERTZ": {},
}

// IsNonsensicalWord reports whether value is a placeholder such as "qwerty",
// an alphabet run ("abcd"), a repeated character ("aaaa") or a run of
// repeated blocks of consecutive letters ("aabbcc").
func IsNonsensicalWord(value string) bool {
	runes := []rune(value)
	if len(runes) < 3 {
		return false
	}

	if _, ok := placeholderWords[value]; ok {
		return true
	}

	return isAlphabetRun(runes) || isRepeatedChar(runes) || isRepeatedBlocks(runes)
}

// isAlphabetRun matches "abc...", "ABC..." and "Abc..."
func isAlphabetRun(runes []rune) bool {
	var next rune

	switch {
	case runes[0] == 'a' && runes[1] == 'b':
		next = 'c'
	case runes[0] == 'A' && runes[1] == 'B':
		next = 'C'
	case runes[0] == 'A' && runes[1] == 'b':
		next = 'c'
	default:
		return false
	}

	for _, r := range runes[2:] {
		if r != next {
			return false
		}
		next++
	}

	return true
}

// isRepeatedChar matches "aaa" and "Aaa"
func isRepeatedChar(runes []rune) bool {
	ch := runes[0]
	i := 1

	if ch >= 'A' && ch <= 'Z' && runes[1] == ch+('a'-'A') {
		ch += 'a' - 'A'
		i++
	}

	for ; i < len(runes); i++ {
		if runes[i] != ch {
			return false
		}
	}

	return true
}

// isRepeatedBlocks matches "aabbcc", "AAABBB" and the like: equal-length blocks
// of one repeated letter, starting at 'a' and incrementing by one per block.
func isRepeatedBlocks(runes []rune) bool {
	ch := runes[0]
	if ch != 'a' && ch != 'A' {
		return false
	}

	size := 1
	for size < len(runes) && runes[size] == ch {
		size++
	}

	if size < 2 || len(runes) < 6 || len(runes)%size != 0 {
		return false
	}

	for block := 1; block < len(runes)/size; block++ {
		want := ch + rune(block)
		for _, r := range runes[block*size : (block+1)*size] {
			if r != want {
				return false
			}
		}
	}

	return true
}
