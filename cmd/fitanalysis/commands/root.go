// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Entry point for analyze, ingest-papers, search, results, serve
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗██╗████████╗ █████╗ ███╗   ██╗ █████╗ ██╗  ██╗   ██╗███████╗██╗███████╗
██╔════╝██║╚══██╔══╝██╔══██╗████╗  ██║██╔══██╗██║  ╚██╗ ██╔╝██╔════╝██║██╔════╝
█████╗  ██║   ██║   ███████║██╔██╗ ██║███████║██║   ╚████╔╝ ███████╗██║███████╗
██╔══╝  ██║   ██║   ██╔══██║██║╚██╗██║██╔══██║██║    ╚██╔╝  ╚════██║██║╚════██║
██║     ██║   ██║   ██║  ██║██║ ╚████║██║  ██║███████╗██║   ███████║██║███████║
╚═╝     ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝╚═╝   ╚══════╝╚═╝╚══════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitanalysis",
		Short: "Analyze fitness videos against a research knowledge base",
		Long: banner + `
Fitanalysis ingests research papers and video transcripts into a local
knowledge base, then analyzes fitness videos against it: good points,
bad points, the workout plan, a conclusion, and scientific backing.

Results are cached per video, so repeated analyses are instant.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewIngestPapersCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewResultsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
