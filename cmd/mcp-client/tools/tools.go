// Package tools provides test functions for MCP tools
package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

var sessionIDPattern = regexp.MustCompile(`Session ID: (\S+)`)

// callTool calls a tool and logs its text result
func callTool(ctx context.Context, c client.MCPClient, name string, arguments map[string]interface{}) (string, error) {
	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = name
	callReq.Params.Arguments = arguments

	result, err := c.CallTool(ctx, callReq)
	if err != nil {
		log.Printf("Failed to call %s: %v", name, err)
		return "", err
	}

	var text string
	if len(result.Content) > 0 {
		if textContent, ok := result.Content[0].(mcp.TextContent); ok {
			text = textContent.Text
		}
	}
	if result.IsError {
		return text, fmt.Errorf("%s returned an error: %s", name, text)
	}

	log.Printf("%s result:\n%s", name, text)
	return text, nil
}

// sessionID extracts the session ID from a create result
func sessionID(text string) (string, error) {
	m := sessionIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("no session ID in %q", text)
	}
	return m[1], nil
}

// writeTestFiles creates a temporary directory holding files. The returned
// function removes it.
func writeTestFiles(name string, files map[string]string) (string, func(), error) {
	testDir := filepath.Join(os.TempDir(), name)
	if err := os.MkdirAll(testDir, 0755); err != nil {
		log.Printf("Failed to create test directory: %v", err)
		return "", nil, err
	}

	cleanup := func() {
		os.RemoveAll(testDir)
		log.Println("Test directory removed")
	}

	for filename, content := range files {
		filePath := filepath.Join(testDir, filename)
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			cleanup()
			log.Printf("Failed to create test file %s: %v", filename, err)
			return "", nil, err
		}
		log.Printf("Created test file: %s", filePath)
	}

	return testDir, cleanup, nil
}
