package cmd

import (
	"fmt"
	"os"

	"github.com/lacehq/lace/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lace",
	Short: "Browse and export Lace agent conversation timelines",
	Long: `A CLI for inspecting Lace agent threads.

Lace records every conversation as an append-only event log (messages,
tool calls, tool results). This tool projects those logs into ordered
timelines and renders or exports them.

Features:
  • List all threads with activity metadata
  • View a projected timeline with paired tool calls and results
  • Follow a live thread as new events arrive
  • Export timelines in multiple formats (JSONL, Markdown, YAML, JSON)
  • Cached projections for fast repeat access

Quick Start:
  lace list                 # List all threads
  lace show <thread-id>     # View a projected timeline
  lace tail <thread-id>     # Follow a live thread
  lace export --format md   # Export as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom thread database path (default: $LACE_DIR/lace.db or ~/.lace/lace.db)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
