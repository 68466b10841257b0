// ABOUTME: AnalysisResult is the memoized answer for one video
// ABOUTME: VideoAnalysis is the structured payload assembled by synthesis
package models

import "time"

// AnalysisResult stores one completed analysis keyed by video ID.
// At most one result exists per video; it is never refreshed.
type AnalysisResult struct {
	VideoID      string    `json:"video_id"`
	VideoTitle   string    `json:"video_title"`
	AnalysisJSON string    `json:"analysis_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// AnalysisPayload holds the five aggregate fields, one per analytical
// sub-query. Slices default to empty, strings to "".
type AnalysisPayload struct {
	GoodPoints        []string `json:"good_points"`
	BadPoints         []string `json:"bad_points"`
	WorkoutPlan       string   `json:"workout_plan"`
	Conclusion        string   `json:"conclusion"`
	ScientificBacking string   `json:"scientific_backing"`
}

// VideoAnalysis is the full structured answer returned to callers.
type VideoAnalysis struct {
	VideoTitle string          `json:"videoTitle"`
	Analysis   AnalysisPayload `json:"analysis"`
}

// NewAnalysisPayload returns a payload with non-nil slices so that the
// aggregate always serializes arrays, never null.
func NewAnalysisPayload() AnalysisPayload {
	return AnalysisPayload{
		GoodPoints: []string{},
		BadPoints:  []string{},
	}
}
