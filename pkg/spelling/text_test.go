package spelling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTextCasing(t *testing.T) {
	tests := []struct {
		value string
		want  TextCasing
	}{
		{"foo", CasingLower},
		{"FOO", CasingUpper},
		{"Foo", CasingFirstUpper},
		{"F", CasingFirstUpper},
		{"fooBar", CasingUndefined},
		{"123", CasingUndefined},
		{"foo_bar", CasingLower},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, GetTextCasing(tt.value))
		})
	}
}

func TestSetTextCasing(t *testing.T) {
	assert.Equal(t, "receive", SetTextCasing("Receive", CasingLower))
	assert.Equal(t, "RECEIVE", SetTextCasing("receive", CasingUpper))
	assert.Equal(t, "Receive", SetTextCasing("rECEIVE", CasingFirstUpper))
	assert.Equal(t, "rEceive", SetTextCasing("rEceive", CasingUndefined))
	assert.True(t, TextCasingEquals("Foo", "Bar"))
	assert.False(t, TextCasingEquals("fooBar", "bazQux"))
}

func TestSplitValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		mode  SplitMode
		want  []string
	}{
		{"camel case", "getHTTPResponse", IdentifierSplitMode, []string{"get", "HTTP", "Response"}},
		{"snake case", "max_word_length", IdentifierSplitMode, []string{"max", "word", "length"}},
		{"leading underscore", "__init", IdentifierSplitMode, []string{"init"}},
		{"hyphen in text", "well-known", TextSplitMode, []string{"well", "known"}},
		{"hyphen ignored for identifiers", "well-known", SplitCase, []string{"well-known"}},
		{"upper run at end", "parseURL", IdentifierSplitMode, []string{"parse", "URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range SplitValue(tt.value, tt.mode) {
				got = append(got, p.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitValue_Idempotent(t *testing.T) {
	for _, value := range []string{"fooBarBAZ", "HTMLParser", "read_file2Buffer", "XMLHttpRequest"} {
		for _, piece := range SplitValue(value, IdentifierSplitMode) {
			again := SplitValue(piece.Value, IdentifierSplitMode)
			if assert.Len(t, again, 1, piece.Value) {
				assert.Equal(t, piece.Value, again[0].Value)
				assert.Equal(t, 0, again[0].Index)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	text := "It's a well-known fact: don't split e-mail, x86 or foo_bar."

	var got []string
	for _, token := range Tokenize(text, 0, len(text)) {
		assert.Equal(t, token.Value, text[token.Index:token.End()])
		got = append(got, token.Value)
	}

	assert.Equal(t, []string{"It", "well-known", "fact", "don't", "split", "mail", "or"}, got)
}

func TestTokenize_Region(t *testing.T) {
	text := "alpha beta gamma"

	tokens := Tokenize(text, 6, 10)
	if assert.Len(t, tokens, 1) {
		assert.Equal(t, Token{Value: "beta", Index: 6}, tokens[0])
	}
}

func TestIsStandaloneWord(t *testing.T) {
	assert.True(t, IsStandaloneWord("hello"))
	assert.True(t, IsStandaloneWord("well-known"))
	assert.True(t, IsStandaloneWord("don't"))
	assert.True(t, IsStandaloneWord("John's"))
	assert.False(t, IsStandaloneWord("x86"))
	assert.False(t, IsStandaloneWord("a"))
	assert.False(t, IsStandaloneWord("C#"))
	assert.False(t, IsStandaloneWord("foo_bar"))
}

func TestIsNonsensicalWord(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"qwerty", true},
		{"QWERTY", true},
		{"xyz", true},
		{"abcdef", true},
		{"Abcd", true},
		{"aaaa", true},
		{"Aaaa", true},
		{"aabbcc", true},
		{"AAABBB", true},
		{"xyzabd", false},
		{"aab", false},
		{"aabbdd", false},
		{"ab", false},
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNonsensicalWord(tt.value))
		})
	}
}
