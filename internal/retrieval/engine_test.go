// ABOUTME: Tests for the retrieval engine
// ABOUTME: Verifies cosine properties, ranking, tie stability, and k limits
package retrieval

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/fitanalysis/server/internal/models"
)

type fakeEmbedder struct {
	vector []float64
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	f.calls++
	return f.vector, nil
}

type sliceChunkSource struct {
	chunks []models.KnowledgeChunk
}

func (s *sliceChunkSource) All() ([]models.KnowledgeChunk, error) {
	return s.chunks, nil
}

func chunkWithVector(id string, v []float64) models.KnowledgeChunk {
	return models.KnowledgeChunk{
		ID:         id,
		Text:       id,
		Embedding:  v,
		SourceID:   "src",
		SourceType: models.SourceTypeResearchPaper,
	}
}

func TestCosineSimilarityProperties(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0.5, 0.5, 0.7},
		{-1, 2, -3},
	}

	for _, a := range vectors {
		if sim := CosineSimilarity(a, a); math.Abs(sim-1) > 1e-9 {
			t.Errorf("sim(a, a) = %v, want ~1 for %v", sim, a)
		}
		for _, b := range vectors {
			if s1, s2 := CosineSimilarity(a, b), CosineSimilarity(b, a); s1 != s2 {
				t.Errorf("sim(a, b) = %v but sim(b, a) = %v", s1, s2)
			}
		}
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	if sim := CosineSimilarity(zero, []float64{1, 2, 3}); sim != 0 {
		t.Errorf("sim(0, b) = %v, want 0", sim)
	}
	if sim := CosineSimilarity(zero, zero); sim != 0 {
		t.Errorf("sim(0, 0) = %v, want 0 (epsilon guards the division)", sim)
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	source := &sliceChunkSource{chunks: []models.KnowledgeChunk{
		chunkWithVector("orthogonal", []float64{0, 1, 0, 0}),
		chunkWithVector("aligned", []float64{1, 0, 0, 0}),
		chunkWithVector("opposite", []float64{-1, 0, 0, 0}),
		chunkWithVector("close", []float64{0.9, 0.1, 0, 0}),
	}}
	engine := NewEngine(&fakeEmbedder{vector: []float64{1, 0, 0, 0}}, source)

	results, err := engine.Search(context.Background(), "query", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	wantOrder := []string{"aligned", "close", "orthogonal", "opposite"}
	if len(results) != len(wantOrder) {
		t.Fatalf("Search() returned %d results, want %d", len(results), len(wantOrder))
	}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %v, want %v", i, results[i].ID, want)
		}
	}
}

func TestSearchLimitsToK(t *testing.T) {
	var chunks []models.KnowledgeChunk
	for i := 0; i < 20; i++ {
		chunks = append(chunks, chunkWithVector(fmt.Sprintf("chunk_%d", i), []float64{1, float64(i)}))
	}
	engine := NewEngine(&fakeEmbedder{vector: []float64{1, 0}}, &sliceChunkSource{chunks: chunks})

	results, err := engine.Search(context.Background(), "query", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 5 {
		t.Errorf("Search() returned %d results, want 5", len(results))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.ID] {
			t.Errorf("chunk %s returned twice", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestSearchKLargerThanStore(t *testing.T) {
	source := &sliceChunkSource{chunks: []models.KnowledgeChunk{
		chunkWithVector("only", []float64{1, 0}),
	}}
	engine := NewEngine(&fakeEmbedder{vector: []float64{1, 0}}, source)

	results, err := engine.Search(context.Background(), "query", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results, want 1", len(results))
	}
}

func TestSearchStableOnTies(t *testing.T) {
	// Identical vectors score identically; load order must be preserved.
	source := &sliceChunkSource{chunks: []models.KnowledgeChunk{
		chunkWithVector("first", []float64{1, 1}),
		chunkWithVector("second", []float64{1, 1}),
		chunkWithVector("third", []float64{1, 1}),
	}}
	engine := NewEngine(&fakeEmbedder{vector: []float64{1, 0}}, source)

	results, err := engine.Search(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %v, want %v (tie order)", i, results[i].ID, want)
		}
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	source := &sliceChunkSource{chunks: []models.KnowledgeChunk{
		chunkWithVector("bad", []float64{1, 0, 0}),
	}}
	engine := NewEngine(&fakeEmbedder{vector: []float64{1, 0}}, source)

	if _, err := engine.Search(context.Background(), "query", 1); err == nil {
		t.Error("Search() should fail on embedding dimension mismatch")
	}
}
