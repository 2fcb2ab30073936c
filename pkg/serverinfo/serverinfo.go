package serverinfo

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Dictionary reported by the dictionary resource
var dictionary *spellcheck.Dictionary

// HandleServerInfo is the handler function for the server info resource
func HandleServerInfo(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	info := map[string]interface{}{
		"timestamp":      time.Now().Format(time.RFC3339),
		"go_version":     runtime.Version(),
		"os":             runtime.GOOS,
		"architecture":   runtime.GOARCH,
		"cpu_cores":      runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_stats":   getMemoryStats(),
		"uptime_seconds": getUptime(),
	}

	return textResource(request.Params.URI, "Server Information", info), nil
}

// HandleDictionaryInfo is the handler function for the dictionary resource
func HandleDictionaryInfo(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if dictionary == nil {
		return nil, fmt.Errorf("dictionary not initialized")
	}

	data := dictionary.Data()

	loadedAt := "never"
	if t := dictionary.LoadedAt(); !t.IsZero() {
		loadedAt = t.Format(time.RFC3339)
	}

	info := map[string]interface{}{
		"paths":                strings.Join(dictionary.Paths(), ", "),
		"loaded_at":            loadedAt,
		"words":                data.Words().Len(),
		"case_sensitive_words": data.CaseSensitiveWords().Len(),
		"non_words":            len(data.Words().NonWords()) + len(data.CaseSensitiveWords().NonWords()),
		"sequences":            data.Words().SequenceCount() + data.CaseSensitiveWords().SequenceCount(),
		"fixes":                data.Fixes().Len(),
		"supported_languages":  languageNames(),
	}

	return textResource(request.Params.URI, "Dictionary Information", info), nil
}

// RegisterServerInfo registers the server and dictionary info resources with the MCP server
func RegisterServerInfo(mcpServer *server.MCPServer, dict *spellcheck.Dictionary) {
	dictionary = dict

	mcpServer.AddResource(
		mcp.NewResource(
			"server://info",
			"Server Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleServerInfo,
	)

	mcpServer.AddResource(
		mcp.NewResource(
			"spelling://dictionary",
			"Dictionary Information",
			mcp.WithMIMEType("text/plain"),
		),
		HandleDictionaryInfo,
	)
}

// textResource renders info as sorted "key: value" lines
func textResource(uri, title string, info map[string]interface{}) []mcp.ResourceContents {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	infoStr := title + ":\n\n"
	for _, k := range keys {
		infoStr += fmt.Sprintf("%s: %v\n", k, info[k])
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     infoStr,
		},
	}
}

func languageNames() string {
	var names []string
	for _, lang := range spellcheck.GetSupportedLanguages() {
		names = append(names, lang.Name)
	}
	return strings.Join(names, ", ")
}

// getMemoryStats returns memory statistics
func getMemoryStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
		"num_gc":         memStats.NumGC,
	}
}

// startTime is used to calculate uptime
var startTime = time.Now()

// getUptime returns the server uptime in seconds
func getUptime() float64 {
	return time.Since(startTime).Seconds()
}
