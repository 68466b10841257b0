// ABOUTME: Main entry point for the analysis MCP server with stdio transport
// ABOUTME: Initializes config, storage, OpenAI client, and all MCP tools
package main

import (
	"log"
	"os"

	"github.com/fitanalysis/server/internal/analysis"
	"github.com/fitanalysis/server/internal/config"
	"github.com/fitanalysis/server/internal/ingest"
	"github.com/fitanalysis/server/internal/llm"
	"github.com/fitanalysis/server/internal/mcp"
	"github.com/fitanalysis/server/internal/retrieval"
	"github.com/fitanalysis/server/internal/storage/sqlite"
	"github.com/fitanalysis/server/internal/synthesis"
	"github.com/fitanalysis/server/internal/video"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embeddings and analysis will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	logger := log.Default()
	chunks := sqlite.NewChunkStore(db)
	results := sqlite.NewResultStore(db)
	pipeline := ingest.NewPipeline(chunks, client, cfg.ChunkSize, logger)
	engine := retrieval.NewEngine(client, chunks)
	fetcher := video.NewFetcher(video.FetcherConfig{
		Binary:          cfg.YtDlpPath,
		WorkDir:         cfg.WorkDir,
		MetadataTimeout: cfg.MetadataTimeout,
		CaptionTimeout:  cfg.CaptionTimeout,
	}, logger)
	orchestrator := synthesis.NewOrchestrator(engine, client, cfg.TopK, logger)
	service := analysis.NewService(pipeline, fetcher, orchestrator, results, logger)

	server := mcpserver.NewMCPServer(
		"Fitness Video Analysis",
		"0.1.0",
	)
	mcp.RegisterTools(server, service, engine, results, cfg.PapersDir, cfg.TopK, logger)

	log.Println("MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
