// Package main runs the suggestion MCP server over stdio for local MCP clients.
// The main service mounts the same server at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitsuggest/internal/config"
	"github.com/2beens/fitsuggest/internal/logging"
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/flows"
	"github.com/2beens/fitsuggest/internal/suggest/inference"
	suggestmcp "github.com/2beens/fitsuggest/internal/suggest/mcp"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the MCP protocol, logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		log.Fatalln("GEMINI_API_KEY not set")
	}

	client := inference.NewGeminiClient(inference.GeminiClientParams{
		BaseURL:      cfg.GeminiBaseURL,
		APIKey:       geminiAPIKey,
		DefaultModel: cfg.DefaultModel,
		Timeout:      cfg.InferenceTimeout.Duration,
	})
	service, err := flows.NewService(suggest.NewInvoker(client, nil), cfg.FlowModels)
	if err != nil {
		log.Fatalf("new suggest service: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := suggestmcp.NewServer(service)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
