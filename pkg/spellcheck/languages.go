package spellcheck

import (
	"strings"
)

// GetSupportedLanguages returns a list of supported programming languages
func GetSupportedLanguages() []Language {
	return []Language{
		{
			Name:                  "Go",
			FileExtensions:        []string{".go"},
			SingleLineComment:     "//",
			MultiLineCommentStart: "/*",
			MultiLineCommentEnd:   "*/",
			StringDelimiters:      []string{"\"", "'"},
			RawStringDelimiters:   []Delimiter{{Open: "`", Close: "`"}},
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer", "else",
				"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
				"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
			},
		},
		{
			Name:                  "JavaScript",
			FileExtensions:        []string{".js", ".jsx", ".ts", ".tsx"},
			SingleLineComment:     "//",
			MultiLineCommentStart: "/*",
			MultiLineCommentEnd:   "*/",
			StringDelimiters:      []string{"\"", "'"},
			RawStringDelimiters:   []Delimiter{{Open: "`", Close: "`"}},
			Keywords: []string{
				"async", "await", "break", "case", "catch", "class", "const", "continue",
				"debugger", "default", "delete", "else", "export", "extends", "finally",
				"function", "import", "instanceof", "typeof", "yield",
			},
		},
		{
			Name:                  "Python",
			FileExtensions:        []string{".py"},
			SingleLineComment:     "#",
			MultiLineCommentStart: "\"\"\"",
			MultiLineCommentEnd:   "\"\"\"",
			StringDelimiters:      []string{"\"", "'"},
			RawStringDelimiters:   []Delimiter{{Open: "'''", Close: "'''"}},
			Keywords: []string{
				"elif", "except", "finally", "global", "import", "lambda", "nonlocal",
				"pass", "raise", "return", "while", "with", "yield", "self", "def",
			},
		},
		{
			Name:                  "Java",
			FileExtensions:        []string{".java"},
			SingleLineComment:     "//",
			MultiLineCommentStart: "/*",
			MultiLineCommentEnd:   "*/",
			StringDelimiters:      []string{"\"", "'"},
			Keywords: []string{
				"abstract", "boolean", "extends", "final", "finally", "implements",
				"instanceof", "native", "protected", "synchronized", "throws", "transient", "volatile",
			},
		},
		{
			Name:                  "C#",
			FileExtensions:        []string{".cs"},
			SingleLineComment:     "//",
			MultiLineCommentStart: "/*",
			MultiLineCommentEnd:   "*/",
			StringDelimiters:      []string{"\"", "'"},
			RawStringDelimiters:   []Delimiter{{Open: "@\"", Close: "\""}},
			Keywords: []string{
				"abstract", "async", "await", "checked", "foreach", "internal", "namespace",
				"readonly", "sealed", "sizeof", "stackalloc", "typeof", "unchecked", "unsafe", "virtual",
			},
		},
	}
}

// GetLanguageByName returns a language by its name
func GetLanguageByName(name string) (Language, bool) {
	languages := GetSupportedLanguages()
	for _, lang := range languages {
		if strings.EqualFold(lang.Name, name) {
			return lang, true
		}
	}
	return Language{}, false
}

// GetLanguageByExtension returns a language by file extension
func GetLanguageByExtension(ext string) (Language, bool) {
	languages := GetSupportedLanguages()
	for _, lang := range languages {
		for _, langExt := range lang.FileExtensions {
			if strings.EqualFold(langExt, ext) {
				return lang, true
			}
		}
	}
	return Language{}, false
}

// IsKeyword reports whether word is a keyword of the language
func (l Language) IsKeyword(word string) bool {
	for _, k := range l.Keywords {
		if k == word {
			return true
		}
	}
	return false
}
