package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serverURL   = flag.String("server", "http://localhost:8080", "MCP server URL")
	timeoutSecs = flag.Int("timeout", 60, "Client timeout in seconds")
	testTool    = flag.String("tool", "all", "Tool to test (spellcheck, spellcheck_text, spellcheck_identifier, spelling_session, stats, all)")
)

func main() {
	flag.Parse()

	// Cancel on timeout or on a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSecs)*time.Second)
	defer cancel()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewClient(*serverURL).Run(ctx, *testTool); err != nil {
		log.Printf("Client failed: %v", err)
		os.Exit(1)
	}
	log.Println("All tests completed")
}
