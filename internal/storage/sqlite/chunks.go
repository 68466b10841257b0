// ABOUTME: Chunk storage operations for SQLite
// ABOUTME: Persists embedding vectors as BLOBs; supports existence and full-scan queries
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/fitanalysis/server/internal/models"
)

// ChunkStore handles knowledge chunk persistence
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Save persists one chunk. Chunks are immutable; saving the same ID twice
// is an error.
func (s *ChunkStore) Save(chunk *models.KnowledgeChunk) error {
	var metadata []byte
	if chunk.Metadata != nil {
		var err error
		metadata, err = json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshal chunk metadata: %w", err)
		}
	}

	createdAt := chunk.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO knowledge_chunks (id, source_id, source_type, chunk_text, embedding, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, chunk.ID, chunk.SourceID, string(chunk.SourceType), chunk.Text,
		vectorToBlob(chunk.Embedding), nullBytes(metadata), createdAt)
	if err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}

	return nil
}

// ExistsBySource reports whether any chunk exists for the given source ID
func (s *ChunkStore) ExistsBySource(sourceID string) (bool, error) {
	var one int
	err := s.db.QueryRow(`
		SELECT 1 FROM knowledge_chunks WHERE source_id = ? LIMIT 1
	`, sourceID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query chunk existence: %w", err)
	}
	return true, nil
}

// CountBySource returns the number of chunks stored for a source ID
func (s *ChunkStore) CountBySource(sourceID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM knowledge_chunks WHERE source_id = ?
	`, sourceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return count, nil
}

// All returns every stored chunk in insertion order. The retrieval engine
// relies on this order being stable across calls.
func (s *ChunkStore) All() ([]models.KnowledgeChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, source_id, source_type, chunk_text, embedding, metadata, created_at
		FROM knowledge_chunks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.KnowledgeChunk
	for rows.Next() {
		var (
			chunk      models.KnowledgeChunk
			sourceType string
			blob       []byte
			metadata   sql.NullString
		)
		if err := rows.Scan(&chunk.ID, &chunk.SourceID, &sourceType, &chunk.Text,
			&blob, &metadata, &chunk.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}

		chunk.SourceType = models.SourceType(sourceType)
		chunk.Embedding = blobToVector(blob)
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal chunk metadata: %w", err)
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// nullBytes converts an empty byte slice to a SQL NULL
func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}

// vectorToBlob converts a float64 slice to a little-endian binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob back to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
