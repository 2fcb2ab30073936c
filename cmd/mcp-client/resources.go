package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReadTextResource reads a resource and logs its text
func ReadTextResource(ctx context.Context, c client.MCPClient, uri string) error {
	readReq := mcp.ReadResourceRequest{}
	readReq.Params.URI = uri

	result, err := c.ReadResource(ctx, readReq)
	if err != nil {
		log.Printf("Failed to read %s: %v", uri, err)
		return err
	}

	if len(result.Contents) > 0 {
		if textContent, ok := result.Contents[0].(mcp.TextResourceContents); ok {
			log.Printf("%s:\n%s", uri, textContent.Text)
		}
	}

	return nil
}
