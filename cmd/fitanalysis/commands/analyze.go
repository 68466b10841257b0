// ABOUTME: CLI command to analyze a fitness video
// ABOUTME: Runs the full flow and prints the structured analysis
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitanalysis/server/internal/models"
	"github.com/joho/godotenv"
)

var analyzePapersDir string

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <video-url>",
		Short: "Analyze a fitness video against the knowledge base",
		Long: `Analyze a fitness video against the research knowledge base.

Ingests any new papers from the papers directory, fetches the video's
title and transcript, and produces a structured assessment. Results are
cached per video: analyzing the same URL again returns the stored result.

Examples:
  fitanalysis analyze "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  fitanalysis analyze --papers ./research "https://youtu.be/dQw4w9WgXcQ"
  fitanalysis analyze --format json "https://youtu.be/dQw4w9WgXcQ"`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzePapersDir, "papers", "", "Directory of research PDFs (default from config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	papersDir := analyzePapersDir
	if papersDir == "" {
		papersDir = a.cfg.PapersDir
	}

	result, err := a.service.Run(cmd.Context(), args[0], papersDir)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printAnalysis(cmd, result)
	return nil
}

func printAnalysis(cmd *cobra.Command, result *models.VideoAnalysis) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video: %s\n\n", result.VideoTitle)

	printSection(cmd, "Good points", result.Analysis.GoodPoints)
	printSection(cmd, "Bad points", result.Analysis.BadPoints)

	if result.Analysis.WorkoutPlan != "" {
		fmt.Fprintf(out, "Workout plan:\n%s\n\n", result.Analysis.WorkoutPlan)
	}
	if result.Analysis.Conclusion != "" {
		fmt.Fprintf(out, "Conclusion:\n%s\n\n", result.Analysis.Conclusion)
	}
	if result.Analysis.ScientificBacking != "" {
		fmt.Fprintf(out, "Scientific backing:\n%s\n", result.Analysis.ScientificBacking)
	}
}

func printSection(cmd *cobra.Command, title string, points []string) {
	if len(points) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", title)
	for _, point := range points {
		fmt.Fprintf(out, "  - %s\n", point)
	}
	fmt.Fprintln(out)
}
