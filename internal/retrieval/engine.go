// ABOUTME: Brute-force cosine similarity search over all stored chunks
// ABOUTME: Embeds the query, full-scans the chunk store, stable-sorts by score
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/fitanalysis/server/internal/models"
)

// similarityEpsilon guards the cosine denominator against zero vectors
const similarityEpsilon = 1e-10

// Embedder produces an embedding vector for a piece of text
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ChunkSource supplies every stored chunk in a stable load order
type ChunkSource interface {
	All() ([]models.KnowledgeChunk, error)
}

// Engine performs exact nearest-neighbor search. There is no index: every
// query scans all chunks.
type Engine struct {
	embedder Embedder
	chunks   ChunkSource
}

// NewEngine creates a retrieval engine over the given embedder and store
func NewEngine(embedder Embedder, chunks ChunkSource) *Engine {
	return &Engine{embedder: embedder, chunks: chunks}
}

// Search returns up to k chunks ordered by descending cosine similarity to
// the query. Chunks with equal similarity keep their load order. A stored
// vector whose dimension differs from the query's is a caller error.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]models.KnowledgeChunk, error) {
	queryVector, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	all, err := e.chunks.All()
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	scores := make([]float64, len(all))
	for i, chunk := range all {
		if len(chunk.Embedding) != len(queryVector) {
			return nil, fmt.Errorf("chunk %s: embedding dimension %d does not match query dimension %d",
				chunk.ID, len(chunk.Embedding), len(queryVector))
		}
		scores[i] = CosineSimilarity(queryVector, chunk.Embedding)
	}

	order := make([]int, len(all))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]models.KnowledgeChunk, 0, k)
	for _, idx := range order[:k] {
		results = append(results, all[idx])
	}

	return results, nil
}

// CosineSimilarity computes dot(a,b) / (|a|*|b| + epsilon). The epsilon
// keeps a zero vector from dividing by zero; callers must pass vectors of
// equal length.
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + similarityEpsilon)
}
