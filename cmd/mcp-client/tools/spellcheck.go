package tools

import (
	"context"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/client"
)

var spellCheckFiles = map[string]string{
	"comments.go": `package main

// This is a coment with a speling mistake
func main() {
	// Another coment with a mispelled word
}
`,
	"strings.go": `package main

func greet() string {
	return "This is a mesage with a speling mistake"
}
`,
	"identifiers.go": `package main

func displayMessge(userAcount string) {
	println(userAcount)
}
`,
	"script.py": `# Pyton coment
def hello():
    return 'wrold'
`,
}

// TestSpellCheck tests the spellcheck tool
func TestSpellCheck(ctx context.Context, c client.MCPClient) error {
	testDir, cleanup, err := writeTestFiles("mcp_test_spellcheck", spellCheckFiles)
	if err != nil {
		return err
	}
	defer cleanup()

	testCases := []struct {
		name      string
		arguments map[string]interface{}
	}{
		{
			name: "Check all types",
			arguments: map[string]interface{}{
				"path":               testDir,
				"recursive":          true,
				"use_relative_paths": true,
			},
		},
		{
			name: "Check comments only",
			arguments: map[string]interface{}{
				"path":              testDir,
				"check_comments":    true,
				"check_strings":     false,
				"check_identifiers": false,
			},
		},
		{
			name: "Check with custom dictionary",
			arguments: map[string]interface{}{
				"path":              testDir,
				"custom_dictionary": []interface{}{"speling", "coment"},
			},
		},
		{
			name: "Check specific file with suggestions",
			arguments: map[string]interface{}{
				"path":        filepath.Join(testDir, "identifiers.go"),
				"suggestions": true,
			},
		},
		{
			name: "Check Python as Python",
			arguments: map[string]interface{}{
				"path":     filepath.Join(testDir, "script.py"),
				"language": "Python",
			},
		},
	}

	for _, tc := range testCases {
		log.Printf("Running spellcheck test: %s", tc.name)
		if _, err := callTool(ctx, c, "spellcheck", tc.arguments); err != nil {
			return err
		}
	}

	return nil
}

// TestSpellCheckText tests the spellcheck_text tool
func TestSpellCheckText(ctx context.Context, c client.MCPClient) error {
	texts := []string{
		"The quick brwon fox jumps over the lazy dog",
		"Visit https://example.com/recieve or mail someone@example.com",
		"New York is a big city, it's well-known",
	}

	for _, text := range texts {
		log.Printf("Running spellcheck_text test: %q", text)
		if _, err := callTool(ctx, c, "spellcheck_text", map[string]interface{}{"text": text}); err != nil {
			return err
		}
	}
	return nil
}

// TestSpellCheckIdentifier tests the spellcheck_identifier tool
func TestSpellCheckIdentifier(ctx context.Context, c client.MCPClient) error {
	testCases := []map[string]interface{}{
		{"identifier": "readFiel"},
		{"identifier": "HTTPServre"},
		{"identifier": "m_userAcount"},
		{"identifier": "xyzMessge", "prefix_length": 3},
	}

	for _, arguments := range testCases {
		log.Printf("Running spellcheck_identifier test: %v", arguments["identifier"])
		if _, err := callTool(ctx, c, "spellcheck_identifier", arguments); err != nil {
			return err
		}
	}
	return nil
}
