package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Code-Monger/CodeSpeller/cmd/mcp-client/tools"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolTests maps a tool name to the function exercising it
var toolTests = map[string]func(context.Context, client.MCPClient) error{
	"spellcheck":            tools.TestSpellCheck,
	"spellcheck_text":       tools.TestSpellCheckText,
	"spellcheck_identifier": tools.TestSpellCheckIdentifier,
	"spelling_session":      tools.TestSession,
	"stats":                 tools.TestStats,
}

// Client represents the MCP client application
type Client struct {
	serverURL string
	mcpClient client.MCPClient
}

// NewClient creates a new MCP client
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
	}
}

// Run connects to the server and tests the named tool, or every spelling
// tool when testTool is "all"
func (c *Client) Run(ctx context.Context, testTool string) error {
	log.Printf("Connecting to MCP server at %s...", c.serverURL)
	sseClient, err := client.NewSSEMCPClient(c.serverURL)
	if err != nil {
		return fmt.Errorf("failed to create SSE client: %v", err)
	}
	defer sseClient.Close()

	if err := sseClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start SSE client: %v", err)
	}
	c.mcpClient = sseClient

	if err := c.initialize(ctx); err != nil {
		return err
	}

	resourcesResult, toolsResult, err := c.listResourcesAndTools(ctx)
	if err != nil {
		return err
	}

	names := []string{testTool}
	if testTool == "all" {
		names = []string{"spellcheck", "spellcheck_text", "spellcheck_identifier", "spelling_session", "stats"}
	}
	for _, name := range names {
		if err := c.testTool(ctx, name, toolsResult); err != nil {
			return err
		}
	}

	c.readResourceIfAvailable(ctx, resourcesResult, "server://info")
	c.readResourceIfAvailable(ctx, resourcesResult, "spelling://dictionary")
	c.readResourceIfAvailable(ctx, resourcesResult, "stats://usage")

	return nil
}

// initialize initializes the MCP client
func (c *Client) initialize(ctx context.Context) error {
	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "codespeller-client",
		Version: "1.0.0",
	}

	initResult, err := c.mcpClient.Initialize(ctx, initReq)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %v", err)
	}

	log.Printf("Connected to %s %s", initResult.ServerInfo.Name, initResult.ServerInfo.Version)
	log.Printf("Server capabilities: %+v", initResult.Capabilities)
	return nil
}

// listResourcesAndTools lists available resources and tools
func (c *Client) listResourcesAndTools(ctx context.Context) (*mcp.ListResourcesResult, *mcp.ListToolsResult, error) {
	resourcesResult, err := c.mcpClient.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list resources: %v", err)
	}

	log.Printf("Available resources (%d):", len(resourcesResult.Resources))
	for _, resource := range resourcesResult.Resources {
		log.Printf("  - %s (%s)", resource.Name, resource.URI)
	}

	toolsResult, err := c.mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tools: %v", err)
	}

	log.Printf("Available tools (%d):", len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		log.Printf("  - %s: %s", tool.Name, tool.Description)
	}

	return resourcesResult, toolsResult, nil
}

// testTool tests the specified tool
func (c *Client) testTool(ctx context.Context, testTool string, toolsResult *mcp.ListToolsResult) error {
	test, ok := toolTests[testTool]
	if !ok {
		return fmt.Errorf("unknown tool: %s", testTool)
	}

	found := false
	for _, tool := range toolsResult.Tools {
		if tool.Name == testTool {
			found = true
			break
		}
	}
	if !found {
		log.Printf("%s tool not found on server", testTool)
		return nil
	}

	log.Printf("Testing %s tool...", testTool)
	return test(ctx, c.mcpClient)
}

// readResourceIfAvailable reads a resource if the server lists it
func (c *Client) readResourceIfAvailable(ctx context.Context, resourcesResult *mcp.ListResourcesResult, uri string) {
	for _, resource := range resourcesResult.Resources {
		if resource.URI == uri {
			log.Printf("Reading %s resource...", uri)
			ReadTextResource(ctx, c.mcpClient, uri)
			return
		}
	}
	log.Printf("%s resource not found on server", uri)
}
