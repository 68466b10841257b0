// ABOUTME: yt-dlp subprocess wrapper for video metadata and captions
// ABOUTME: Every invocation is bounded; timeouts degrade to empty results
package video

import (
	"bytes"
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultMetadataTimeout bounds title/uploader queries
	DefaultMetadataTimeout = 30 * time.Second
	// DefaultCaptionTimeout bounds the caption download
	DefaultCaptionTimeout = 60 * time.Second
)

// Info holds the fetched metadata and transcript for one video. Any field
// may be empty when the corresponding fetch timed out or failed.
type Info struct {
	Title      string
	Channel    string
	Transcript string
}

// FetcherConfig configures the subprocess wrapper
type FetcherConfig struct {
	Binary          string
	WorkDir         string
	MetadataTimeout time.Duration
	CaptionTimeout  time.Duration
}

// Fetcher shells out to yt-dlp. Fetch failures and timeouts are degraded
// results, not errors: the analysis proceeds with whatever was obtained.
type Fetcher struct {
	binary          string
	workDir         string
	metadataTimeout time.Duration
	captionTimeout  time.Duration
	logger          *log.Logger
}

// NewFetcher creates a Fetcher with defaults applied
func NewFetcher(cfg FetcherConfig, logger *log.Logger) *Fetcher {
	if cfg.Binary == "" {
		cfg.Binary = "yt-dlp"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.MetadataTimeout <= 0 {
		cfg.MetadataTimeout = DefaultMetadataTimeout
	}
	if cfg.CaptionTimeout <= 0 {
		cfg.CaptionTimeout = DefaultCaptionTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		binary:          cfg.Binary,
		workDir:         cfg.WorkDir,
		metadataTimeout: cfg.MetadataTimeout,
		captionTimeout:  cfg.CaptionTimeout,
		logger:          logger,
	}
}

// FetchVideoInfo returns title, channel, and cleaned transcript for the
// video at videoURL. Each underlying invocation is independently bounded;
// a timed-out or failed step leaves its field empty.
func (f *Fetcher) FetchVideoInfo(ctx context.Context, videoURL string) (*Info, error) {
	videoID, err := ParseVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	info := &Info{}
	if title, ok := f.run(ctx, f.metadataTimeout, "--get-title", videoURL); ok {
		info.Title = firstLine(title)
	}
	if uploader, ok := f.run(ctx, f.metadataTimeout, "--get-uploader", videoURL); ok {
		info.Channel = firstLine(uploader)
	}
	info.Transcript = f.fetchTranscript(ctx, videoID, videoURL)

	return info, nil
}

// fetchTranscript downloads auto-generated captions and cleans them into
// plain text. Any failure yields an empty transcript.
func (f *Fetcher) fetchTranscript(ctx context.Context, videoID, videoURL string) string {
	outputTemplate := filepath.Join(f.workDir, videoID+".%(ext)s")
	_, ok := f.run(ctx, f.captionTimeout,
		"--write-auto-sub",
		"--sub-format", "vtt",
		"--skip-download",
		"--output", outputTemplate,
		videoURL,
	)
	if !ok {
		return ""
	}

	vttPath := filepath.Join(f.workDir, videoID+".en.vtt")
	data, err := os.ReadFile(vttPath)
	if err != nil {
		f.logger.Printf("caption file not found: %s", vttPath)
		return ""
	}

	transcript := CleanVTT(string(data))
	f.logger.Printf("transcript length: %d characters", len(transcript))
	return transcript
}

// run executes the binary with a wall-clock bound and returns captured
// stdout. A timeout kills the process and reports failure; the caller
// treats that as a degraded result.
func (f *Fetcher) run(ctx context.Context, timeout time.Duration, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			f.logger.Printf("%s timed out after %s", f.binary, timeout)
		} else {
			f.logger.Printf("%s failed: %v: %s", f.binary, err, strings.TrimSpace(stderr.String()))
		}
		return "", false
	}

	return stdout.String(), true
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
