package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var (
	// Global stats manager instance
	globalStatsManager *StatsManager
)

// InitStatsManager initializes the global stats manager
func InitStatsManager(dataDir string) error {
	statsFilePath := filepath.Join(dataDir, "stats.json")
	manager, err := NewStatsManager(statsFilePath)
	if err != nil {
		return err
	}
	globalStatsManager = manager
	return nil
}

// GetStatsManager returns the global stats manager
func GetStatsManager() *StatsManager {
	return globalStatsManager
}

// HandleGetStats handles requests to get tool usage statistics
func HandleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Printf("[Stats] Received request to get stats")

	if globalStatsManager == nil {
		log.Printf("[Stats] Error: stats manager not initialized")
		return nil, fmt.Errorf("stats manager not initialized")
	}

	// Get the stats before an optional reset
	sessionStats := globalStatsManager.GetSessionStats()
	persistentStats := globalStatsManager.GetPersistentStats()

	statsText := FormatStats(sessionStats, persistentStats)

	if reset, ok := request.Params.Arguments["reset"].(bool); ok && reset {
		globalStatsManager.ResetSessionStats()
		log.Printf("[Stats] Session statistics reset")
		statsText += "\nSession statistics have been reset.\n"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: statsText,
			},
		},
	}, nil
}

// usageReport is the JSON form of the stats://usage resource
type usageReport struct {
	Session    *SessionStats    `json:"session"`
	Persistent *PersistentStats `json:"persistent"`
}

// HandleUsageResource serves the session and persistent statistics as JSON
func HandleUsageResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if globalStatsManager == nil {
		return nil, fmt.Errorf("stats manager not initialized")
	}

	data, err := json.MarshalIndent(usageReport{
		Session:    globalStatsManager.GetSessionStats(),
		Persistent: globalStatsManager.GetPersistentStats(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// RecordToolUsage records statistics for a tool call that started at startTime
func RecordToolUsage(toolName string, startTime time.Time, failed bool) {
	if globalStatsManager == nil {
		return
	}

	executionTime := time.Since(startTime)

	if err := globalStatsManager.RecordToolUsage(toolName, executionTime, failed); err != nil {
		// Log the error but don't fail the request
		log.Printf("[Stats] Failed to record tool usage: %v", err)
	}
}

// RecordAnalysis records how many values a tool checked and how many it flagged
func RecordAnalysis(toolName string, analyzed, flagged int) {
	if globalStatsManager == nil {
		return
	}

	if err := globalStatsManager.RecordAnalysis(toolName, analyzed, flagged); err != nil {
		log.Printf("[Stats] Failed to record analysis: %v", err)
	}
}

// WrapHandler wraps a tool handler with stats tracking
func WrapHandler(toolName string, handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		result, err := handler(ctx, request)
		RecordToolUsage(toolName, startTime, err != nil)
		if err != nil {
			log.Printf("[Stats] Error executing tool '%s': %v", toolName, err)
			return nil, err
		}

		return result, nil
	}
}

// RegisterStats registers the stats tool with the MCP server
func RegisterStats(mcpServer *server.MCPServer, dataDir string) error {
	// Initialize the stats manager unless the server already did
	if globalStatsManager == nil {
		if err := InitStatsManager(dataDir); err != nil {
			return err
		}
	}

	// Create the tool definition
	statsTool := mcp.NewTool("stats",
		mcp.WithDescription("Retrieves usage statistics for the spelling tools: calls, errors, execution time and the number of checked and flagged values"),
		mcp.WithBoolean("reset",
			mcp.Description("Reset the statistics of the current session after returning them (default: false)"),
		),
	)

	// Register the tool with the wrapped handler
	mcpServer.AddTool(statsTool, WrapHandler("stats", HandleGetStats))

	mcpServer.AddResource(
		mcp.NewResource("stats://usage", "Tool Usage",
			mcp.WithMIMEType("application/json"),
		),
		HandleUsageResource,
	)

	log.Printf("[Stats] Registered stats tool and resource")

	return nil
}
