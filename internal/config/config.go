// ABOUTME: Centralized configuration for the fitness video analysis server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the analysis system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration

	// Storage settings
	DBPath string

	// Ingestion settings
	PapersDir string
	ChunkSize int

	// Retrieval settings
	TopK int

	// Video fetch settings
	YtDlpPath       string
	WorkDir         string
	MetadataTimeout time.Duration
	CaptionTimeout  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("FITANALYSIS_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("FITANALYSIS_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		DBPath:          os.Getenv("FITANALYSIS_DB"),
		PapersDir:       getEnv("FITANALYSIS_PAPERS_DIR", "papers"),
		ChunkSize:       getEnvInt("FITANALYSIS_CHUNK_SIZE", 1000),
		TopK:            getEnvInt("FITANALYSIS_TOP_K", 10),
		YtDlpPath:       getEnv("FITANALYSIS_YTDLP", "yt-dlp"),
		WorkDir:         getEnv("FITANALYSIS_WORK_DIR", os.TempDir()),
		MetadataTimeout: getEnvDuration("FITANALYSIS_METADATA_TIMEOUT", 30*time.Second),
		CaptionTimeout:  getEnvDuration("FITANALYSIS_CAPTION_TIMEOUT", 60*time.Second),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("FITANALYSIS_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("FITANALYSIS_TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
