// ABOUTME: MCP tool definitions and registration for the analysis server
// ABOUTME: Defines JSON schemas for the analyze, search, and list tools
package mcp

import (
	"log"

	"github.com/fitanalysis/server/internal/analysis"
	"github.com/fitanalysis/server/internal/retrieval"
	"github.com/fitanalysis/server/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *analysis.Service, engine *retrieval.Engine, results *sqlite.ResultStore, papersDir string, topK int, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	handlers := &Handlers{
		service:   service,
		engine:    engine,
		results:   results,
		papersDir: papersDir,
		topK:      topK,
		logger:    logger,
	}

	// 1. analyze_video - Run the full analysis flow for a video URL
	server.AddTool(mcp.Tool{
		Name:        "analyze_video",
		Description: "Analyze a fitness video against the research knowledge base. Returns good points, bad points, a workout plan, a conclusion, and scientific backing. Results are cached per video.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube video URL (youtube.com/watch?v=... or youtu.be/...)",
				},
			},
			Required: []string{"video_url"},
		},
	}, handlers.AnalyzeVideo)

	// 2. search_knowledge - Semantic search over stored chunks
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the knowledge base of ingested research papers and video transcripts by semantic similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 10)",
					"default":     10,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledge)

	// 3. list_analyses - List previously analyzed videos
	server.AddTool(mcp.Tool{
		Name:        "list_analyses",
		Description: "List all previously analyzed videos with their stored results, most recent first.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListAnalyses)

	return handlers
}
