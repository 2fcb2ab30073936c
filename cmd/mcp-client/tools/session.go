package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// TestSession tests the spelling_session tool and resource
func TestSession(ctx context.Context, c client.MCPClient) error {
	testDir, cleanup, err := writeTestFiles("mcp_test_session", map[string]string{
		"main.go": "package main\n\n// Frobnicate the recieved widgt\nfunc main() {}\n",
	})
	if err != nil {
		return err
	}
	defer cleanup()

	// Using a session that does not exist should fail
	log.Printf("Running session test: Get unknown session")
	if _, err := callTool(ctx, c, "spelling_session", map[string]interface{}{
		"operation":  "get",
		"session_id": "unknown",
	}); err != nil {
		log.Printf("Get of an unknown session failed as expected: %v", err)
	} else {
		log.Printf("Get of an unknown session succeeded unexpectedly")
	}

	log.Printf("Running session test: Create session")
	text, err := callTool(ctx, c, "spelling_session", map[string]interface{}{
		"operation": "create",
		"root_dir":  testDir,
	})
	if err != nil {
		return err
	}
	id, err := sessionID(text)
	if err != nil {
		return err
	}

	log.Printf("Running session test: Check before changes")
	if _, err := callTool(ctx, c, "spellcheck", map[string]interface{}{
		"path":       ".",
		"session_id": id,
	}); err != nil {
		return err
	}

	steps := []map[string]interface{}{
		{"operation": "add_word", "word": "frobnicate"},
		{"operation": "add_fix", "word": "widgt", "fix": "widget"},
		{"operation": "ignore", "word": "recieved"},
		{"operation": "get"},
	}
	for _, arguments := range steps {
		arguments["session_id"] = id
		log.Printf("Running session test: %s", arguments["operation"])
		if _, err := callTool(ctx, c, "spelling_session", arguments); err != nil {
			return err
		}
	}

	log.Printf("Running session test: Check after changes")
	if _, err := callTool(ctx, c, "spellcheck", map[string]interface{}{
		"path":       ".",
		"session_id": id,
	}); err != nil {
		return err
	}

	log.Printf("Reading session resource...")
	if err := readSessionResource(ctx, c, id); err != nil {
		return err
	}

	log.Printf("Running session test: List sessions")
	if _, err := callTool(ctx, c, "spelling_session", map[string]interface{}{"operation": "list"}); err != nil {
		return err
	}

	log.Printf("Running session test: Delete session")
	_, err = callTool(ctx, c, "spelling_session", map[string]interface{}{
		"operation":  "delete",
		"session_id": id,
	})
	return err
}

// readSessionResource reads the spelling://session/{id} resource
func readSessionResource(ctx context.Context, c client.MCPClient, id string) error {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = "spelling://session/" + id

	result, err := c.ReadResource(ctx, req)
	if err != nil {
		log.Printf("Failed to read session resource: %v", err)
		return err
	}

	if len(result.Contents) > 0 {
		if textContent, ok := result.Contents[0].(mcp.TextResourceContents); ok {
			log.Printf("Session resource:\n%s", textContent.Text)
		}
	}
	return nil
}
