// ABOUTME: SQLite database schema for chunk and analysis result storage
// ABOUTME: Creates all tables and indexes for local persistence
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Knowledge chunks (append-only; one row per embedded excerpt)
CREATE TABLE IF NOT EXISTS knowledge_chunks (
    id TEXT PRIMARY KEY,
    source_id TEXT NOT NULL,
    source_type TEXT NOT NULL,
    chunk_text TEXT NOT NULL,
    embedding BLOB NOT NULL,
    metadata TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Memoized analysis results (at most one per video, never updated)
CREATE TABLE IF NOT EXISTS analysis_results (
    video_id TEXT PRIMARY KEY,
    video_title TEXT NOT NULL,
    analysis_json TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_chunks_source ON knowledge_chunks(source_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
