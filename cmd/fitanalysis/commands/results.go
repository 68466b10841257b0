// ABOUTME: CLI command to list stored analysis results
// ABOUTME: Works without an API key; reads the result store only
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewResultsCmd creates the results command
func NewResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List analyzed videos",
		Long: `List all previously analyzed videos, most recent first.

Examples:
  fitanalysis results
  fitanalysis results --format json`,
		Args: cobra.NoArgs,
		RunE: runResults,
	}

	return cmd
}

func runResults(cmd *cobra.Command, args []string) error {
	a, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	results, err := a.results.List()
	if err != nil {
		return fmt.Errorf("listing results: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No analyses stored yet")
		}
		return nil
	}

	if outputFormat == "json" {
		type entry struct {
			VideoID    string          `json:"video_id"`
			VideoTitle string          `json:"video_title"`
			Analysis   json.RawMessage `json:"analysis"`
			CreatedAt  string          `json:"created_at"`
		}
		entries := make([]entry, 0, len(results))
		for _, result := range results {
			entries = append(entries, entry{
				VideoID:    result.VideoID,
				VideoTitle: result.VideoTitle,
				Analysis:   json.RawMessage(result.AnalysisJSON),
				CreatedAt:  result.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "VIDEO ID\tTITLE\tANALYZED\n")
	fmt.Fprintf(w, "--------\t-----\t--------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			result.VideoID,
			truncate(result.VideoTitle, 40),
			formatTime(result.CreatedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d analysis(es) stored\n", len(results))
	}
	return nil
}
