// ABOUTME: Entry operation for a full video analysis request
// ABOUTME: Sequences paper ingestion, video ingestion, cache lookup, synthesis
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fitanalysis/server/internal/models"
	"github.com/fitanalysis/server/internal/video"
)

// UnknownVideoTitle is used when the metadata fetch yields no title
const UnknownVideoTitle = "Unknown Video"

// Ingestor covers both paper-directory and raw-text ingestion
type Ingestor interface {
	IngestPapers(ctx context.Context, dir string) error
	IngestText(ctx context.Context, sourceID string, sourceType models.SourceType, rawText string, metadata map[string]any) error
}

// Fetcher obtains title, channel, and transcript for a video URL
type Fetcher interface {
	FetchVideoInfo(ctx context.Context, videoURL string) (*video.Info, error)
}

// Synthesizer assembles the structured analysis for a video title
type Synthesizer interface {
	Synthesize(ctx context.Context, videoTitle string) (*models.VideoAnalysis, error)
}

// ResultStore persists and looks up memoized analysis results
type ResultStore interface {
	Get(videoID string) (*models.AnalysisResult, error)
	Save(result *models.AnalysisResult) (bool, error)
}

// Service runs the full analysis flow. All collaborators are injected.
type Service struct {
	ingestor    Ingestor
	fetcher     Fetcher
	synthesizer Synthesizer
	results     ResultStore
	logger      *log.Logger
}

// NewService creates an analysis service
func NewService(ingestor Ingestor, fetcher Fetcher, synthesizer Synthesizer, results ResultStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		ingestor:    ingestor,
		fetcher:     fetcher,
		synthesizer: synthesizer,
		results:     results,
		logger:      logger,
	}
}

// Run answers the analysis request for one video. Papers are rescanned on
// every call, even when the result is already cached; the per-source
// existence checks keep the rescan cheap. A cached result is returned
// without any fetch, retrieval, or generation calls.
func (s *Service) Run(ctx context.Context, videoURL, papersDir string) (*models.VideoAnalysis, error) {
	result, err := s.run(ctx, videoURL, papersDir)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, videoURL, papersDir string) (*models.VideoAnalysis, error) {
	if err := s.ingestor.IngestPapers(ctx, papersDir); err != nil {
		return nil, err
	}

	videoID, err := video.ParseVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	cached, err := s.results.Get(videoID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		s.logger.Printf("analysis for video %s already exists, returning cached result", videoID)
		var analysis models.VideoAnalysis
		if err := json.Unmarshal([]byte(cached.AnalysisJSON), &analysis); err != nil {
			return nil, fmt.Errorf("decode cached analysis for %s: %w", videoID, err)
		}
		return &analysis, nil
	}

	info, err := s.fetcher.FetchVideoInfo(ctx, videoURL)
	if err != nil {
		// Degraded: analyze against the knowledge base without the video
		s.logger.Printf("could not fetch video info for %s: %v", videoID, err)
		info = &video.Info{}
	}
	title := info.Title
	if title == "" {
		title = UnknownVideoTitle
	}

	if err := s.ingestor.IngestText(ctx, videoID, models.SourceTypeVideo, info.Transcript,
		map[string]any{"video_title": title}); err != nil {
		return nil, err
	}

	analysis, err := s.synthesizer.Synthesize(ctx, title)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis for %s: %w", videoID, err)
	}
	if _, err := s.results.Save(&models.AnalysisResult{
		VideoID:      videoID,
		VideoTitle:   title,
		AnalysisJSON: string(payload),
		CreatedAt:    time.Now(),
	}); err != nil {
		return nil, err
	}

	return analysis, nil
}
