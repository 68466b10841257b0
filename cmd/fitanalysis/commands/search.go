// ABOUTME: CLI command to search the knowledge base
// ABOUTME: Semantic search over ingested papers and transcripts
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search the knowledge base by semantic similarity.

Embeds the query and ranks every stored chunk by cosine similarity.

Examples:
  fitanalysis search "hypertrophy rep ranges"
  fitanalysis search --limit 5 "protein timing"
  fitanalysis search --format json "progressive overload"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	query := args[0]
	chunks, err := a.engine.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching knowledge base: %w", err)
	}

	if len(chunks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TYPE\tSOURCE\tTEXT\n")
	fmt.Fprintf(w, "----\t------\t----\n")
	for _, chunk := range chunks {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			chunk.SourceType,
			truncate(chunk.SourceID, 30),
			truncate(chunk.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(chunks))
	}
	return nil
}
