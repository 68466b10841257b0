// ABOUTME: Ingestion pipeline: chunk, embed, and persist source documents
// ABOUTME: Idempotent per source ID; a per-source lock covers check-then-insert
package ingest

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitanalysis/server/internal/chunker"
	"github.com/fitanalysis/server/internal/models"
)

// DefaultChunkSize is the character bound passed to the chunker
const DefaultChunkSize = 1000

// Embedder produces an embedding vector for a piece of text
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ChunkStore persists chunks and answers source-existence queries
type ChunkStore interface {
	Save(chunk *models.KnowledgeChunk) error
	ExistsBySource(sourceID string) (bool, error)
}

// Pipeline ingests raw text into the chunk store. Ingestion of a source
// that already has chunks is a no-op.
type Pipeline struct {
	store     ChunkStore
	embedder  Embedder
	chunkSize int
	logger    *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPipeline creates an ingestion pipeline
func NewPipeline(store ChunkStore, embedder Embedder, chunkSize int, logger *log.Logger) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		chunkSize: chunkSize,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// sourceLock returns the mutex guarding one source ID, creating it on
// first use. Holding it across the existence check and the inserts keeps
// concurrent ingestion of the same source from double-inserting.
func (p *Pipeline) sourceLock(sourceID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[sourceID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[sourceID] = lock
	}
	return lock
}

// IngestText chunks, embeds, and persists rawText under the given source.
// Blank text is a deliberate no-op, not an error. Chunks are persisted one
// at a time; an embedding failure mid-run leaves the already-stored prefix
// in place and propagates the error.
func (p *Pipeline) IngestText(ctx context.Context, sourceID string, sourceType models.SourceType, rawText string, metadata map[string]any) error {
	lock := p.sourceLock(sourceID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := p.store.ExistsBySource(sourceID)
	if err != nil {
		return fmt.Errorf("check source %s: %w", sourceID, err)
	}
	if exists {
		p.logger.Printf("chunks for %s already exist, skipping ingestion", sourceID)
		return nil
	}

	chunks := chunker.Chunk(rawText, p.chunkSize)
	if len(chunks) == 0 {
		p.logger.Printf("no content to ingest for %s", sourceID)
		return nil
	}
	p.logger.Printf("created %d chunks for %s", len(chunks), sourceID)

	for i, text := range chunks {
		embedding, err := p.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed chunk %d of %s: %w", i, sourceID, err)
		}

		meta := map[string]any{"chunk_index": i}
		for k, v := range metadata {
			meta[k] = v
		}

		chunk := &models.KnowledgeChunk{
			ID:         "chunk_" + uuid.New().String(),
			Text:       text,
			Embedding:  embedding,
			SourceID:   sourceID,
			SourceType: sourceType,
			Metadata:   meta,
			CreatedAt:  time.Now(),
		}
		if err := p.store.Save(chunk); err != nil {
			return fmt.Errorf("save chunk %d of %s: %w", i, sourceID, err)
		}
	}

	p.logger.Printf("saved %d chunks for %s", len(chunks), sourceID)
	return nil
}
