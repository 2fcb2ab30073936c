package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const resourcePrefix = "spelling://session/"

var (
	// Store used by the MCP handlers
	sessionStore = NewStore(nil)

	// Files written by the save operation
	userDictionaryPath string
	fixListPath        string
)

// HandleSession is the handler function for the spelling_session tool
func HandleSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments

	// Extract operation
	operation, ok := arguments["operation"].(string)
	if !ok {
		return nil, fmt.Errorf("operation must be a string")
	}

	if operation == "create" {
		rootDir, _ := arguments["root_dir"].(string)
		info := sessionStore.Create(rootDir)

		log.Printf("[Session] Created session %s rooted at %s", info.ID, info.RootDir)

		resultText := "Spelling session created successfully\n\n"
		resultText += fmt.Sprintf("Session ID: %s\n", info.ID)
		resultText += fmt.Sprintf("Root directory: %s\n", info.RootDir)
		return textResult(resultText), nil
	}

	if operation == "list" {
		sessions := sessionStore.List()

		resultText := fmt.Sprintf("Active Sessions (%d)\n\n", len(sessions))
		for i, info := range sessions {
			resultText += fmt.Sprintf("%d. %s", i+1, formatInfo(info))
		}
		return textResult(resultText), nil
	}

	// The remaining operations act on an existing session
	sessionID, ok := arguments["session_id"].(string)
	if !ok || sessionID == "" {
		return nil, fmt.Errorf("session_id must be a string")
	}

	var resultText string

	switch operation {
	case "get":
		info, err := sessionStore.Get(sessionID)
		if err != nil {
			return nil, err
		}
		resultText = "Spelling Session Information\n\n" + formatInfo(info)

	case "add_word":
		word, ok := arguments["word"].(string)
		if !ok {
			return nil, fmt.Errorf("word must be a string")
		}
		if err := sessionStore.AddWord(sessionID, word); err != nil {
			return nil, err
		}
		resultText = fmt.Sprintf("Added word %q to session %s\n", word, sessionID)

	case "add_fix":
		word, ok := arguments["word"].(string)
		if !ok {
			return nil, fmt.Errorf("word must be a string")
		}
		fix, ok := arguments["fix"].(string)
		if !ok {
			return nil, fmt.Errorf("fix must be a string")
		}
		if err := sessionStore.AddFix(sessionID, word, fix); err != nil {
			return nil, err
		}
		resultText = fmt.Sprintf("Accepted fix %q -> %q in session %s\n", word, fix, sessionID)

	case "ignore":
		word, ok := arguments["word"].(string)
		if !ok {
			return nil, fmt.Errorf("word must be a string")
		}
		if err := sessionStore.Ignore(sessionID, word); err != nil {
			return nil, err
		}
		resultText = fmt.Sprintf("Ignoring %q in session %s\n", word, sessionID)

	case "save":
		if err := sessionStore.Save(sessionID, userDictionaryPath, fixListPath); err != nil {
			return nil, err
		}
		log.Printf("[Session] Saved session %s to %s and %s", sessionID, userDictionaryPath, fixListPath)
		resultText = fmt.Sprintf("Saved session %s\n\nUser dictionary: %s\nFix list: %s\n", sessionID, userDictionaryPath, fixListPath)

	case "delete":
		if err := sessionStore.Delete(sessionID); err != nil {
			return nil, err
		}
		resultText = fmt.Sprintf("Deleted session %s\n", sessionID)

	default:
		return nil, fmt.Errorf("unsupported operation: %s", operation)
	}

	return textResult(resultText), nil
}

// HandleSessionResource is the handler function for the session resource
func HandleSessionResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI

	// Format: spelling://session/session_id
	sessionID := strings.TrimPrefix(uri, resourcePrefix)
	if sessionID == uri || sessionID == "" {
		return nil, fmt.Errorf("invalid session resource URI: %s", uri)
	}

	info, err := sessionStore.Get(sessionID)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     formatInfo(info),
		},
	}, nil
}

// RegisterSession registers the spelling_session tool and resource with the
// MCP server. The handlers use store; save writes to the given files.
func RegisterSession(mcpServer *server.MCPServer, store *Store, userDictionary, fixList string) {
	sessionStore = store
	userDictionaryPath = userDictionary
	fixListPath = fixList

	// Create the tool definition
	sessionTool := mcp.NewTool("spelling_session",
		mcp.WithDescription("Manages spelling sessions. A session has its own copy of the dictionary: words, accepted fixes and ignored values added to it apply to the spellcheck tools called with its session_id, and can be saved to the user dictionary."),
		mcp.WithString("operation",
			mcp.Description("Operation to perform: 'create', 'get', 'list', 'add_word', 'add_fix', 'ignore', 'save' or 'delete'"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Session ID (required for every operation except 'create' and 'list')"),
		),
		mcp.WithString("root_dir",
			mcp.Description("Directory relative paths are resolved against (for 'create')"),
		),
		mcp.WithString("word",
			mcp.Description("Word to add or ignore, or the misspelling of an accepted fix"),
		),
		mcp.WithString("fix",
			mcp.Description("Correction of word (for 'add_fix')"),
		),
	)

	mcpServer.AddTool(sessionTool, stats.WrapHandler("spelling_session", HandleSession))

	// Register the resource template for session-specific URIs
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"{session_id}",
			"Spelling Session",
			mcp.WithTemplateMIMEType("text/plain"),
			mcp.WithTemplateDescription("Words, fixes and ignored values of a spelling session"),
		),
		HandleSessionResource,
	)

	log.Printf("[Session] Registered spelling_session tool and resource")
}

func formatInfo(info Info) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session ID: %s\n", info.ID))
	b.WriteString(fmt.Sprintf("   Root directory: %s\n", info.RootDir))
	b.WriteString(fmt.Sprintf("   Created: %s\n", info.CreatedAt.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("   Last accessed: %s\n", info.LastAccess.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("   Words: %s\n", strings.Join(info.Words, ", ")))

	fixes := make([]string, len(info.Fixes))
	for i, fix := range info.Fixes {
		fixes[i] = fix.Key + " -> " + fix.Value
	}
	b.WriteString(fmt.Sprintf("   Fixes: %s\n", strings.Join(fixes, ", ")))
	b.WriteString(fmt.Sprintf("   Ignored: %s\n\n", strings.Join(info.Ignored, ", ")))
	return b.String()
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}
