// ABOUTME: Shared application wiring for CLI commands
// ABOUTME: Builds config, database, OpenAI client, and the analysis stack
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fitanalysis/server/internal/analysis"
	"github.com/fitanalysis/server/internal/config"
	"github.com/fitanalysis/server/internal/ingest"
	"github.com/fitanalysis/server/internal/llm"
	"github.com/fitanalysis/server/internal/retrieval"
	"github.com/fitanalysis/server/internal/storage/sqlite"
	"github.com/fitanalysis/server/internal/synthesis"
	"github.com/fitanalysis/server/internal/video"
)

// app bundles the wired components a command may need. Not every command
// uses the full stack: openStore builds only config and database, openApp
// adds the OpenAI-backed pipeline on top.
type app struct {
	cfg      *config.Config
	db       *sqlite.DB
	chunks   *sqlite.ChunkStore
	results  *sqlite.ResultStore
	pipeline *ingest.Pipeline
	engine   *retrieval.Engine
	service  *analysis.Service
	logger   *log.Logger
}

func (a *app) Close() error {
	return a.db.Close()
}

// cliLogger returns a logger honoring the global quiet/verbose flags
func cliLogger() *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	flags := 0
	if verbose {
		flags = log.LstdFlags
	}
	return log.New(os.Stderr, "", flags)
}

// openStore wires config and database only. Commands that never call
// OpenAI (like results) use this so they work without an API key.
func openStore() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg:     cfg,
		db:      db,
		chunks:  sqlite.NewChunkStore(db),
		results: sqlite.NewResultStore(db),
		logger:  cliLogger(),
	}, nil
}

// openApp wires the full analysis stack on top of openStore
func openApp() (*app, error) {
	a, err := openStore()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         a.cfg.OpenAIKey,
		ChatModel:      a.cfg.ChatModel,
		EmbeddingModel: a.cfg.EmbeddingModel,
		Timeout:        a.cfg.Timeout,
	})
	if err != nil {
		_ = a.db.Close()
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	a.pipeline = ingest.NewPipeline(a.chunks, client, a.cfg.ChunkSize, a.logger)
	a.engine = retrieval.NewEngine(client, a.chunks)

	fetcher := video.NewFetcher(video.FetcherConfig{
		Binary:          a.cfg.YtDlpPath,
		WorkDir:         a.cfg.WorkDir,
		MetadataTimeout: a.cfg.MetadataTimeout,
		CaptionTimeout:  a.cfg.CaptionTimeout,
	}, a.logger)
	orchestrator := synthesis.NewOrchestrator(a.engine, client, a.cfg.TopK, a.logger)
	a.service = analysis.NewService(a.pipeline, fetcher, orchestrator, a.results, a.logger)

	return a, nil
}
