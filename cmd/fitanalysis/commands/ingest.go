// ABOUTME: CLI command to ingest research papers into the knowledge base
// ABOUTME: Scans a directory of PDFs, skipping already ingested sources
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

// NewIngestPapersCmd creates the ingest-papers command
func NewIngestPapersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest-papers [dir]",
		Short: "Ingest research PDFs into the knowledge base",
		Long: `Ingest research PDFs from a directory into the knowledge base.

Each PDF is extracted, chunked, embedded, and stored. Papers already in
the knowledge base are skipped, so rescanning a directory is cheap.

Examples:
  fitanalysis ingest-papers
  fitanalysis ingest-papers ./research`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngestPapers,
	}

	return cmd
}

func runIngestPapers(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	dir := a.cfg.PapersDir
	if len(args) > 0 {
		dir = args[0]
	}

	if err := a.pipeline.IngestPapers(cmd.Context(), dir); err != nil {
		return fmt.Errorf("ingesting papers: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested papers from %s\n", dir)
	}
	return nil
}
