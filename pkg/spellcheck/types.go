package spellcheck

// Kinds of source text that are checked
const (
	KindComment    = "comment"
	KindString     = "string"
	KindIdentifier = "identifier"
)

// SpellCheckResult represents a spelling issue found in the code
type SpellCheckResult struct {
	FilePath    string   `json:"file_path"`
	LineNumber  int      `json:"line_number"`
	ColumnStart int      `json:"column_start"`
	ColumnEnd   int      `json:"column_end"`
	Word        string   `json:"word"`
	Parent      string   `json:"parent,omitempty"`
	Context     string   `json:"context"`
	Type        string   `json:"type"` // "comment", "string", "identifier"
	Suggestions []string `json:"suggestions,omitempty"`
}

// Delimiter is a pair of opening and closing markers
type Delimiter struct {
	Open  string
	Close string
}

// Language represents a programming language with its file extensions and comment patterns
type Language struct {
	Name                  string
	FileExtensions        []string
	SingleLineComment     string
	MultiLineCommentStart string
	MultiLineCommentEnd   string
	StringDelimiters      []string
	RawStringDelimiters   []Delimiter
	Keywords              []string
}

// CheckOptions selects what is checked in source files
type CheckOptions struct {
	// Language forces a language instead of detecting it from the file extension
	Language         string
	CheckComments    bool
	CheckStrings     bool
	CheckIdentifiers bool
	// Recursive descends into subdirectories
	Recursive bool
	// Suggestions adds corrections to each result
	Suggestions bool
}

// DefaultCheckOptions checks comments, strings and identifiers recursively
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		CheckComments:    true,
		CheckStrings:     true,
		CheckIdentifiers: true,
		Recursive:        true,
		Suggestions:      true,
	}
}

// Segment is a piece of source text handed to the spellchecker.
// Offset is the byte offset of Text in the file.
type Segment struct {
	Kind   string
	Text   string
	Offset int
}
