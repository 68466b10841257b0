// ABOUTME: Analysis result storage operations for SQLite
// ABOUTME: Insert-if-absent semantics keyed by video ID
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fitanalysis/server/internal/models"
)

// ResultStore handles memoized analysis result persistence
type ResultStore struct {
	db *DB
}

// NewResultStore creates a new ResultStore
func NewResultStore(db *DB) *ResultStore {
	return &ResultStore{db: db}
}

// Save stores a result if none exists for its video ID. A concurrent
// duplicate insert resolves as success; the first writer wins. Returns
// whether this call inserted the row.
func (s *ResultStore) Save(result *models.AnalysisResult) (bool, error) {
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO analysis_results (video_id, video_title, analysis_json, created_at)
		VALUES (?, ?, ?, ?)
	`, result.VideoID, result.VideoTitle, result.AnalysisJSON, createdAt)
	if err != nil {
		return false, fmt.Errorf("insert analysis result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert analysis result: %w", err)
	}
	return affected > 0, nil
}

// Get returns the stored result for a video ID, or nil if none exists
func (s *ResultStore) Get(videoID string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := s.db.QueryRow(`
		SELECT video_id, video_title, analysis_json, created_at
		FROM analysis_results
		WHERE video_id = ?
	`, videoID).Scan(&result.VideoID, &result.VideoTitle, &result.AnalysisJSON, &result.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis result: %w", err)
	}
	return &result, nil
}

// List returns all stored results, most recent first
func (s *ResultStore) List() ([]models.AnalysisResult, error) {
	rows, err := s.db.Query(`
		SELECT video_id, video_title, analysis_json, created_at
		FROM analysis_results
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query analysis results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.AnalysisResult
	for rows.Next() {
		var result models.AnalysisResult
		if err := rows.Scan(&result.VideoID, &result.VideoTitle, &result.AnalysisJSON, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
