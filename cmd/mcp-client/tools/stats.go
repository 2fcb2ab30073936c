package tools

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
)

// TestStats tests the stats tool
func TestStats(ctx context.Context, c client.MCPClient) error {
	log.Printf("Running stats test")
	if _, err := callTool(ctx, c, "stats", map[string]interface{}{}); err != nil {
		return err
	}

	log.Printf("Running stats test: Reset session stats")
	_, err := callTool(ctx, c, "stats", map[string]interface{}{"reset": true})
	return err
}
