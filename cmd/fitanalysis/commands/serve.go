// ABOUTME: Serve command starts the Model Context Protocol server
// ABOUTME: Enables LLM agents to analyze videos and search knowledge via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fitanalysis/server/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the analysis system as an MCP (Model Context Protocol) server,
exposing analyze_video, search_knowledge, and list_analyses over stdio.`,
		RunE: runServe,
		Example: `  # Start MCP server (typically launched by an MCP client)
  fitanalysis serve

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "fitanalysis": {
  #       "command": "fitanalysis",
  #       "args": ["serve"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embeddings and analysis will not work")
	}

	a, err := openApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = a.Close() }()

	server := mcpserver.NewMCPServer(
		"Fitness Video Analysis",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, a.service, a.engine, a.results, a.cfg.PapersDir, a.cfg.TopK, a.logger)

	// Graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	}
}
