// ABOUTME: KnowledgeChunk represents one retrievable excerpt of a source document
// ABOUTME: Chunks are immutable once created; there is no update path
package models

import "time"

// SourceType identifies the kind of document a chunk came from
type SourceType string

const (
	SourceTypeVideo         SourceType = "VIDEO"
	SourceTypeResearchPaper SourceType = "RESEARCH_PAPER"
)

// KnowledgeChunk pairs a bounded excerpt of a source document with its
// embedding vector. The presence of any chunk for a source ID is treated as
// proof that the source was fully ingested.
type KnowledgeChunk struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Embedding  []float64      `json:"-"`
	SourceID   string         `json:"source_id"`
	SourceType SourceType     `json:"source_type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
