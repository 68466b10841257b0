// ABOUTME: MCP tool handler implementations for the analysis server
// ABOUTME: Wraps the analysis service, retrieval engine, and result store
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fitanalysis/server/internal/analysis"
	"github.com/fitanalysis/server/internal/retrieval"
	"github.com/fitanalysis/server/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service   *analysis.Service
	engine    *retrieval.Engine
	results   *sqlite.ResultStore
	papersDir string
	topK      int
	logger    *log.Logger
}

// AnalyzeVideo handles the analyze_video tool
func (h *Handlers) AnalyzeVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := request.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url argument is required and must be a string"), nil
	}

	h.logger.Printf("analyze_video: %s", videoURL)
	result, err := h.service.Run(ctx, videoURL, h.papersDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", h.topK)
	if maxResults <= 0 {
		maxResults = h.topK
	}

	chunks, err := h.engine.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	matches := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		matches = append(matches, map[string]interface{}{
			"chunk_id":    chunk.ID,
			"source_id":   chunk.SourceID,
			"source_type": string(chunk.SourceType),
			"text":        chunk.Text,
			"metadata":    chunk.Metadata,
		})
	}

	response := map[string]interface{}{
		"query":   query,
		"matches": matches,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListAnalyses handles the list_analyses tool
func (h *Handlers) ListAnalyses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	results, err := h.results.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list analyses: %v", err)), nil
	}

	analyses := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		analyses = append(analyses, map[string]interface{}{
			"video_id":    result.VideoID,
			"video_title": result.VideoTitle,
			"analysis":    json.RawMessage(result.AnalysisJSON),
			"created_at":  result.CreatedAt.Format(time.RFC3339),
		})
	}

	response := map[string]interface{}{
		"analyses": analyses,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
