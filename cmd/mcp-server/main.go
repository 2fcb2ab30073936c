package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Code-Monger/CodeSpeller/pkg/config"
	"github.com/Code-Monger/CodeSpeller/pkg/serverinfo"
	"github.com/Code-Monger/CodeSpeller/pkg/session"
	"github.com/Code-Monger/CodeSpeller/pkg/spellcheck"
	"github.com/Code-Monger/CodeSpeller/pkg/spelling"
	"github.com/Code-Monger/CodeSpeller/pkg/stats"
	"github.com/Code-Monger/CodeSpeller/pkg/watcher"
	"github.com/mark3labs/mcp-go/server"
)

var (
	port          = flag.Int("port", 8080, "Port to listen on")
	baseURL       = flag.String("baseurl", "", "Base URL for the server (e.g., http://localhost:8080)")
	serverName    = flag.String("name", "CodeSpeller MCP Server", "Server name")
	serverVer     = flag.String("version", "1.0.0", "Server version")
	instructions  = flag.String("instructions", "This server spellchecks source code, identifiers and text. Create a spelling session to add words and accept fixes.", "Server instructions")
	configFile    = flag.String("config", "", "YAML configuration file")
	dataDir       = flag.String("data-dir", "", "Directory to store data files (overrides config)")
	dictPaths     = flag.String("dict", "", "Comma separated dictionary files or directories (overrides config)")
	minWordLength = flag.Int("min-word-length", 0, "Minimal length of a flagged word (overrides config)")
	maxWordLength = flag.Int("max-word-length", 0, "Maximal length of a flagged word (overrides config)")
	watch         = flag.Bool("watch", false, "Reload the dictionaries when their files change (overrides config)")
)

// loadConfig merges the environment, the config file and the command-line flags
func loadConfig() (*config.Config, error) {
	cfg := *config.GetConfig()

	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = *dataDir
		case "dict":
			cfg.DictionaryPaths = config.SplitList(*dictPaths)
		case "min-word-length":
			cfg.MinWordLength = *minWordLength
		case "max-word-length":
			cfg.MaxWordLength = *maxWordLength
		case "watch":
			cfg.Watch = *watch
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// dictionaryPaths returns the configured dictionaries plus the user dictionary
// and fix list. Missing user files are created empty so they are loaded and
// watched from the start.
func dictionaryPaths(cfg *config.Config) ([]string, error) {
	paths := append([]string(nil), cfg.DictionaryPaths...)
	for _, path := range []string{cfg.UserDictionaryPath(), cfg.FixListPath()} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("error creating directory for %s: %w", path, err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("error creating %s: %w", path, err)
		}
		file.Close()
		paths = append(paths, path)
	}
	return paths, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the dictionaries
	paths, err := dictionaryPaths(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare user dictionaries: %v", err)
	}
	dict := spellcheck.NewDictionary(paths, spelling.LoadOptions{})
	if err := dict.Load(ctx); err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
	}

	// Create the MCP server
	mcpServer := server.NewMCPServer(
		*serverName,
		*serverVer,
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithInstructions(*instructions),
	)

	// Initialize stats service
	if err := stats.InitStatsManager(cfg.DataDir); err != nil {
		log.Fatalf("Failed to initialize stats manager: %v", err)
	}

	// Register tools and resources
	store := session.NewStore(dict.Data)
	spellcheck.RegisterSpellCheck(mcpServer, dict, cfg.SpellingOptions(), store)
	session.RegisterSession(mcpServer, store, cfg.UserDictionaryPath(), cfg.FixListPath())
	serverinfo.RegisterServerInfo(mcpServer, dict)

	// Register stats tool
	if err := stats.RegisterStats(mcpServer, cfg.DataDir); err != nil {
		log.Fatalf("Failed to register stats tool: %v", err)
	}

	// Watch the dictionaries; sessions pick up the reloaded dictionary on their next request
	if cfg.Watch {
		w, err := watcher.New(paths, watcher.DefaultDebounce, dict.Load)
		if err != nil {
			log.Fatalf("Failed to create dictionary watcher: %v", err)
		}
		if err := w.Start(ctx); err != nil {
			log.Fatalf("Failed to watch dictionaries: %v", err)
		}
		defer w.Stop()
	}

	// Create the SSE server
	baseURLValue := *baseURL
	if baseURLValue == "" {
		baseURLValue = fmt.Sprintf("http://localhost:%d", *port)
	}

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURLValue),
		server.WithSSEEndpoint("/"),
		server.WithMessageEndpoint("/messages"),
	)

	// Set up HTTP server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: sseServer,
	}

	// Set up signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		log.Printf("[Server] Starting MCP server on port %d...", *port)
		log.Printf("[Server] Base URL: %s", baseURLValue)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop

	// Create a deadline for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	log.Println("[Server] Shutting down server...")

	// Print final stats before shutdown
	if statsManager := stats.GetStatsManager(); statsManager != nil {
		statsText := stats.FormatStats(statsManager.GetSessionStats(), statsManager.GetPersistentStats())
		log.Printf("[Server] Final server statistics:\n%s", statsText)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[Server] Server shutdown failed: %v", err)
	}
	log.Println("[Server] Server stopped")
}
