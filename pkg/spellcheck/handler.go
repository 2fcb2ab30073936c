package spellcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/Code-Monger/CodeSpeller/pkg/session"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/Code-Monger/CodeSpeller/pkg/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Dictionary shared by all requests
	dictionary *Dictionary

	// Options of the spellchecker
	spellOptions = spelling.DefaultOptions()

	// Sessions selected with the session_id argument
	sessionStore *session.Store
)

// checkerFor returns a checker over the dictionary snapshot of a session
func checkerFor(sessionID string) (*Checker, error) {
	if dictionary == nil {
		return nil, fmt.Errorf("dictionary not initialized")
	}

	data := dictionary.Data()
	if sessionStore != nil && sessionID != "" {
		var err error
		data, err = sessionStore.Data(sessionID)
		if err != nil {
			return nil, err
		}
	}

	return NewChecker(data, spellOptions, dictionary.Suggester()), nil
}

// HandleSpellCheck is the handler function for the spellcheck tool
func HandleSpellCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	// Extract file or directory path
	path, ok := arguments["path"].(string)
	if !ok {
		return nil, fmt.Errorf("path must be a string")
	}

	opts := DefaultCheckOptions()

	// Extract language (optional)
	opts.Language, _ = arguments["language"].(string)

	// Extract check types
	if v, ok := arguments["check_comments"].(bool); ok {
		opts.CheckComments = v
	}
	if v, ok := arguments["check_strings"].(bool); ok {
		opts.CheckStrings = v
	}
	if v, ok := arguments["check_identifiers"].(bool); ok {
		opts.CheckIdentifiers = v
	}
	if v, ok := arguments["recursive"].(bool); ok {
		opts.Recursive = v
	}
	if v, ok := arguments["suggestions"].(bool); ok {
		opts.Suggestions = v
	}

	// Extract use_relative_paths flag
	useRelativePaths := true
	if v, ok := arguments["use_relative_paths"].(bool); ok {
		useRelativePaths = v
	}

	// Extract custom dictionary words
	customDictionary := stringSlice(arguments["custom_dictionary"])

	// Extract session ID
	sessionID, _ := arguments["session_id"].(string)

	checker, err := checkerFor(sessionID)
	if err != nil {
		return nil, err
	}
	if len(customDictionary) > 0 {
		checker = NewChecker(checker.Spellchecker().Data().AddIgnoredValues(customDictionary...), spellOptions, checker.suggester)
	}

	// Resolve the path against the session root
	rootDir := "."
	fullPath := path
	if sessionStore != nil {
		rootDir = sessionStore.RootDir(sessionID)
		fullPath = sessionStore.ResolveRelativePath(path, sessionID)
	} else if !filepath.IsAbs(path) {
		fullPath = filepath.Join(rootDir, path)
	}

	log.Printf("[SpellCheck] Checking %s", fullPath)

	results, err := checker.CheckPath(ctx, fullPath, opts)
	if err != nil {
		return nil, fmt.Errorf("error performing spell check: %w", err)
	}

	// Convert paths to relative if requested
	if useRelativePaths {
		for i := range results {
			if relPath, err := filepath.Rel(rootDir, results[i].FilePath); err == nil {
				results[i].FilePath = relPath
			}
		}
	}

	stats.RecordAnalysis("spellcheck", checker.FilesChecked(), len(results))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: FormatResults(results),
			},
		},
	}, nil
}

// HandleSpellCheckText is the handler function for the spellcheck_text tool
func HandleSpellCheckText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	text, ok := arguments["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text must be a string")
	}

	sessionID, _ := arguments["session_id"].(string)
	checker, err := checkerFor(sessionID)
	if err != nil {
		return nil, err
	}

	matches := checker.Spellchecker().AnalyzeText(text)
	stats.RecordAnalysis("spellcheck_text", 1, len(matches))

	return matchesResult(checker, matches, false)
}

// HandleSpellCheckIdentifier is the handler function for the spellcheck_identifier tool
func HandleSpellCheckIdentifier(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	identifier, ok := arguments["identifier"].(string)
	if !ok {
		return nil, fmt.Errorf("identifier must be a string")
	}

	// Extract prefix length; the default skips leading underscores and scope prefixes
	prefixLength := IdentifierPrefixLength(identifier)
	if v, ok := arguments["prefix_length"].(float64); ok {
		prefixLength = int(v)
	}
	if prefixLength < 0 || prefixLength > len(identifier) {
		return nil, fmt.Errorf("prefix_length must be between 0 and %d", len(identifier))
	}

	sessionID, _ := arguments["session_id"].(string)
	checker, err := checkerFor(sessionID)
	if err != nil {
		return nil, err
	}

	matches := checker.Spellchecker().AnalyzeIdentifier(identifier, prefixLength)
	stats.RecordAnalysis("spellcheck_identifier", 1, len(matches))

	return matchesResult(checker, matches, true)
}

// matchResult is the JSON form of a flagged value
type matchResult struct {
	spelling.SpellingMatch
	Suggestions []string `json:"suggestions,omitempty"`
}

func matchesResult(checker *Checker, matches []spelling.SpellingMatch, identifier bool) (*mcp.CallToolResult, error) {
	result := &mcp.CallToolResult{}

	if len(matches) == 0 {
		result.Content = append(result.Content, mcp.TextContent{
			Type: "text",
			Text: "No spelling issues found.",
		})
		return result, nil
	}

	items := make([]matchResult, len(matches))
	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Found %d spelling issues:\n\n", len(matches)))

	for i, m := range matches {
		items[i] = matchResult{SpellingMatch: m, Suggestions: checker.Suggest(m.Value, identifier)}

		summary.WriteString(fmt.Sprintf("%d. %s at offset %d", i+1, m.Value, m.Index))
		if m.HasParent() {
			summary.WriteString(fmt.Sprintf(" in %s", m.Parent))
		}
		summary.WriteString("\n")
		if len(items[i].Suggestions) > 0 {
			summary.WriteString(fmt.Sprintf("   Suggestions: %s\n", strings.Join(items[i].Suggestions, ", ")))
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding matches: %w", err)
	}

	result.Content = append(result.Content,
		mcp.TextContent{Type: "text", Text: summary.String()},
		mcp.TextContent{Type: "text", Text: string(data)},
	)
	return result, nil
}

// FormatResults renders spelling issues as the text returned by the spellcheck tool
func FormatResults(results []SpellCheckResult) string {
	if len(results) == 0 {
		return "No spelling issues found."
	}

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf("Found %d spelling issues:\n\n", len(results)))

	for i, issue := range results {
		summary.WriteString(fmt.Sprintf("%d. File: %s\n", i+1, issue.FilePath))
		summary.WriteString(fmt.Sprintf("   Line: %d, Columns: %d-%d\n", issue.LineNumber, issue.ColumnStart, issue.ColumnEnd))
		summary.WriteString(fmt.Sprintf("   Type: %s\n", issue.Type))
		summary.WriteString(fmt.Sprintf("   Word: %s\n", issue.Word))
		if issue.Parent != "" {
			summary.WriteString(fmt.Sprintf("   In: %s\n", issue.Parent))
		}
		summary.WriteString(fmt.Sprintf("   Context: %s\n", issue.Context))
		if len(issue.Suggestions) > 0 {
			summary.WriteString(fmt.Sprintf("   Suggestions: %s\n", strings.Join(issue.Suggestions, ", ")))
		}
		summary.WriteString("\n")
	}

	return summary.String()
}

func stringSlice(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var result []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	return result
}

// RegisterSpellCheck registers the spellcheck tools with the MCP server
func RegisterSpellCheck(mcpServer *server.MCPServer, dict *Dictionary, opts spelling.Options, store *session.Store) {
	dictionary = dict
	spellOptions = opts
	sessionStore = store

	// Create the tool definition
	spellCheckTool := mcp.NewTool("spellcheck",
		mcp.WithDescription("Checks spelling in code comments, string literals, and identifiers. Identifiers are split on case changes, underscores and digits (camelCase, snake_case, PascalCase); multi-word dictionary sequences, URLs and known non-words are not flagged. Provides suggestions for corrections."),
		mcp.WithString("path",
			mcp.Description("The path of the file or directory to check (absolute or relative to the session root directory)"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("The programming language to check (default: auto-detect from file extension)"),
		),
		mcp.WithBoolean("check_comments",
			mcp.Description("Whether to check spelling in comments (default: true)"),
		),
		mcp.WithBoolean("check_strings",
			mcp.Description("Whether to check spelling in string literals (default: true)"),
		),
		mcp.WithBoolean("check_identifiers",
			mcp.Description("Whether to check spelling in identifiers (variable and function names) (default: true)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Whether to check files recursively in subdirectories (default: true)"),
		),
		mcp.WithBoolean("use_relative_paths",
			mcp.Description("Whether to use relative paths in the results (default: true)"),
		),
		mcp.WithBoolean("suggestions",
			mcp.Description("Whether to suggest corrections for each issue (default: true)"),
		),
		mcp.WithArray("custom_dictionary",
			mcp.Description("A list of custom words to consider as correctly spelled"),
		),
		mcp.WithString("session_id",
			mcp.Description("Spelling session whose dictionary and root directory are used"),
		),
	)

	spellCheckTextTool := mcp.NewTool("spellcheck_text",
		mcp.WithDescription("Checks the spelling of free text. Returns the flagged words with their byte offsets and suggestions."),
		mcp.WithString("text",
			mcp.Description("The text to check"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Spelling session whose dictionary is used"),
		),
	)

	spellCheckIdentifierTool := mcp.NewTool("spellcheck_identifier",
		mcp.WithDescription("Checks the spelling of a single identifier such as a variable or function name. The identifier is split into words on case changes, underscores and digits."),
		mcp.WithString("identifier",
			mcp.Description("The identifier to check"),
			mcp.Required(),
		),
		mcp.WithNumber("prefix_length",
			mcp.Description("Length of a prefix that is not checked, such as '_' or 'm_' (default: detected)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Spelling session whose dictionary is used"),
		),
	)

	// Register the tools with wrapped handlers
	mcpServer.AddTool(spellCheckTool, stats.WrapHandler("spellcheck", HandleSpellCheck))
	mcpServer.AddTool(spellCheckTextTool, stats.WrapHandler("spellcheck_text", HandleSpellCheckText))
	mcpServer.AddTool(spellCheckIdentifierTool, stats.WrapHandler("spellcheck_identifier", HandleSpellCheckIdentifier))

	log.Printf("[SpellCheck] Registered spellcheck, spellcheck_text and spellcheck_identifier tools")
}
